// Package seeds holds the curated starting points of a harvest run.
package seeds

// List groups the seeds a run starts from.
type List struct {
	// News, Local and Social are registered directly without fetching.
	News   []string `mapstructure:"news"`
	Local  []string `mapstructure:"local"`
	Social []string `mapstructure:"social"`
	// Feeds are aggregator RSS feeds harvested before the directory crawl.
	Feeds []string `mapstructure:"feeds"`
	// Directories are crawled recursively.
	Directories []string `mapstructure:"directories"`
	// PublisherFeeds are harvested after the directory crawl.
	PublisherFeeds []string `mapstructure:"publisher_feeds"`
}

// Direct returns the seeds registered without a fetch, in run order.
func (l List) Direct() []string {
	out := make([]string, 0, len(l.News)+len(l.Local)+len(l.Social))
	out = append(out, l.News...)
	out = append(out, l.Local...)
	return append(out, l.Social...)
}

// Empty reports whether the list has nothing to harvest.
func (l List) Empty() bool {
	return len(l.News)+len(l.Local)+len(l.Social)+len(l.Feeds)+len(l.Directories)+len(l.PublisherFeeds) == 0
}

// Default returns the built-in English news and social seed set.
func Default() List {
	return List{
		News:           clone(newsSeeds),
		Local:          clone(ukLocalSites),
		Social:         clone(socialSeeds),
		Feeds:          clone(googleNewsFeeds),
		Directories:    clone(directorySources),
		PublisherFeeds: clone(publisherFeeds),
	}
}

func clone(in []string) []string {
	return append([]string(nil), in...)
}

var newsSeeds = []string{
	"https://bbc.co.uk",
	"https://bbc.com",
	"https://theguardian.com",
	"https://reuters.com",
	"https://apnews.com",
	"https://ft.com",
	"https://bloomberg.com",
	"https://metro.co.uk",
	"https://standard.co.uk",
	"https://nytimes.com",
	"https://cnn.com",
	"https://aljazeera.com",
	"https://news.sky.com",
	"https://dailymail.co.uk",
	"https://telegraph.co.uk",
	"https://thetimes.co.uk",
	"https://thesun.co.uk",
	"https://express.co.uk",
	"https://mirror.co.uk",
	"https://talktv.co.uk",
}

var ukLocalSites = []string{
	"manchestereveningnews.co.uk",
	"liverpoolecho.co.uk",
	"birminghammail.co.uk",
	"mylondon.news",
	"kentlive.news",
	"walesonline.co.uk",
	"chroniclelive.co.uk",
	"dailyrecord.co.uk",
	"insidecroydon.com",
	"essexlive.news",
	"plymouthherald.co.uk",
	"glasgowlive.co.uk",
	"edinburghnews.scotsman.com",
	"bristolpost.co.uk",
}

var socialSeeds = []string{
	"https://facebook.com",
	"https://instagram.com",
	"https://threads.net",
	"https://x.com",
	"https://twitter.com",
	"https://youtube.com",
	"https://linkedin.com",
	"https://tiktok.com",
	"https://snapchat.com",
	"https://reddit.com",
	"https://quora.com",
	"https://discord.com",
	"https://telegram.org",
	"https://signal.org",
	"https://twitch.tv",
	"https://rumble.com",
	"https://truthsocial.com",
	"https://gab.com",
	"https://parler.com",
	"mastodon.social",
	"lemmy.world",
	"pixelfed.social",
	"peertube.social",
}

var googleNewsFeeds = []string{
	"https://news.google.com/rss?hl=en-GB&gl=GB&ceid=GB:en",
	"https://news.google.com/rss?hl=en-US&gl=US&ceid=US:en",
	"https://news.google.com/rss?hl=en-CA&gl=CA&ceid=CA:en",
	"https://news.google.com/rss?hl=en-AU&gl=AU&ceid=AU:en",
	"https://news.google.com/rss?hl=en-IE&gl=IE&ceid=IE:en",
	"https://news.google.com/rss?hl=en-NZ&gl=NZ&ceid=NZ:en",
}

var directorySources = []string{
	"https://www.w3newspapers.com/",
	"https://www.newspaperlists.com/",
	"https://www.thepaperboy.com/newspapers-by-country.cfm",
}

var publisherFeeds = []string{
	"https://feeds.skynews.com/feeds/rss/home.xml",
	"https://www.telegraph.co.uk/rss.xml",
	"https://www.theguardian.com/uk/rss",
	"https://www.dailymail.co.uk/articles.rss",
	"https://www.ft.com/?format=rss",
}
