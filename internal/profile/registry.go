package profile

import (
	"fmt"
	"sort"
)

const (
	Sprinklr = "sprinklr"
	Tubular  = "tubular"
	YouScan  = "youscan"
)

var timestampCandidates = []string{
	"Created Time", "Created time", "created_time", "created time",
	"Fecha de creación", "Fecha", "Date Created", "Timestamp", "Time",
}

var timestampKeywords = []string{"creat", "fecha", "time", "date", "timestamp"}

var registry = map[string]Profile{
	Sprinklr: {
		Key:                  Sprinklr,
		Label:                "Sprinklr",
		Description:          "CRM engagement export with a single Created Time column and p.m./a.m. markers",
		Strategy:             LocaleAMPM,
		DefaultCreatedColumn: "Created Time",
		Candidates:           timestampCandidates,
		Keywords:             timestampKeywords,
		DayFirst:             false,
		DropColumns:          []string{"Sender Profile Image Url", "Associated Cases"},
		DefaultColumns: ColumnSet{
			Name:    "sprinklr-default",
			Version: 1,
			Columns: []string{"Message", "Sender Name", "Social Network", "Permalink", "Engagement"},
		},
	},
	Tubular: {
		Key:                  Tubular,
		Label:                "Tubular",
		Description:          "Video analytics export with a Published_Date column in slash or ISO layout",
		Strategy:             AutoDetect,
		DefaultCreatedColumn: "Published_Date",
		Candidates: append([]string{
			"Published_Date", "Published Date", "published_date", "published date",
		}, timestampCandidates...),
		Keywords:    append([]string{"publish"}, timestampKeywords...),
		DayFirst:    true,
		FloorToHour: true,
		DefaultColumns: ColumnSet{
			Name:    "tubular-default",
			Version: 1,
			Columns: []string{
				"Published_Date", "Platform", "Creator", "Video_Title",
				"Video_URL", "Total_Engagements", "Views",
			},
		},
	},
	YouScan: {
		Key:               YouScan,
		Label:             "YouScan",
		Description:       "Social listening export with separate Date (22.09.2025) and Time (06:28) columns",
		Strategy:          SplitDateTime,
		DefaultDateColumn: "Date",
		DefaultTimeColumn: "Time",
		DateCandidates:    []string{"Date", "date", "Fecha", "fecha"},
		TimeCandidates:    []string{"Time", "time", "Hora", "hora"},
		DateKeywords:      []string{"date", "fecha"},
		TimeKeywords:      []string{"time", "hora"},
		Keywords:          timestampKeywords,
		SplitLayout:       "2.1.2006 15:04",
		DateOnlyLayout:    "2.1.2006",
		DayFirst:          true,
		KeepOriginalHora:  true,
		DefaultColumns: ColumnSet{
			Name:    "youscan-default",
			Version: 1,
			Columns: []string{
				"Author", "Source", "Title", "URL", "Likes",
				"Comments", "Shares", "Reach", "Engagement", "Views",
			},
		},
	},
}

// Get returns a copy of the named profile.
func Get(key string) (Profile, bool) {
	p, ok := registry[key]
	if !ok {
		return Profile{}, false
	}
	return p.Clone(), true
}

// MustGet is like Get but panics on an unknown key. Use it for the
// compiled-in profile names only.
func MustGet(key string) Profile {
	p, ok := Get(key)
	if !ok {
		panic(fmt.Sprintf("profile: unknown profile %q", key))
	}
	return p
}

// Keys returns the registered profile keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(registry))
	for k := range registry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// All returns copies of every profile, sorted by key.
func All() []Profile {
	keys := Keys()
	out := make([]Profile, 0, len(keys))
	for _, k := range keys {
		out = append(out, registry[k].Clone())
	}
	return out
}
