// Package vocab holds the fixed vocabularies the index codes are drawn from
package vocab

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Product is a feedback target
type Product struct {
	ID     int
	Short  string
	Pretty string
}

// Products known to the index
var (
	Firefox = Product{ID: 1, Short: "firefox", Pretty: "Firefox"}
	Mobile  = Product{ID: 2, Short: "mobile", Pretty: "Firefox for Mobile"}
)

// Products lists every product in id order
func Products() []Product { return []Product{Firefox, Mobile} }

// ProductByShort finds a product by short name, case insensitive
func ProductByShort(short string) (Product, bool) {
	for _, p := range Products() {
		if strings.EqualFold(p.Short, short) {
			return p, true
		}
	}
	return Product{}, false
}

// OpinionType is the feedback kind stored in the type attribute
type OpinionType struct {
	ID        int
	Short     string
	Sentiment string
}

// Opinion types; ids are what the index stores
var (
	Praise = OpinionType{ID: 1, Short: "praise", Sentiment: "happy"}
	Issue  = OpinionType{ID: 2, Short: "issue", Sentiment: "sad"}
	Idea   = OpinionType{ID: 3, Short: "idea", Sentiment: "ideas"}
)

// OpinionTypes lists the types in id order
func OpinionTypes() []OpinionType { return []OpinionType{Praise, Issue, Idea} }

// TypeBySentiment maps the dashboard words happy, sad and ideas to a type
func TypeBySentiment(word string) (OpinionType, bool) {
	for _, t := range OpinionTypes() {
		if t.Sentiment == word {
			return t, true
		}
	}
	return OpinionType{}, false
}

// TypeByID maps a stored type id back to its type
func TypeByID(id int64) (OpinionType, bool) {
	for _, t := range OpinionTypes() {
		if int64(t.ID) == id {
			return t, true
		}
	}
	return OpinionType{}, false
}

// Platform is an OS family as reported by the user agent
type Platform struct {
	Short  string
	Pretty string
}

// PlatformUsage is ordered by observed usage, most common first
var PlatformUsage = []Platform{
	{"win7", "Windows 7"},
	{"winxp", "Windows XP"},
	{"mac", "Mac OS X"},
	{"vista", "Windows Vista"},
	{"linux", "Linux"},
	{"android", "Android"},
	{"maemo", "Maemo"},
	{"win2000", "Windows 2000"},
	{"winnt", "Windows NT"},
	{"win9x", "Windows 95/98/ME"},
	{"wince", "Windows CE"},
	{"freebsd", "FreeBSD"},
	{"openbsd", "OpenBSD"},
	{"sunos", "Solaris"},
	{"other", "Other"},
}

// KnownManufacturers of mobile hardware seen in feedback
var KnownManufacturers = []string{
	"Samsung", "HTC", "Motorola", "LG", "Sony Ericsson", "Nokia",
	"Dell", "Acer", "Huawei", "ZTE", "Sharp", "Archos", "Asus",
}

// KnownDevices seen in feedback
var KnownDevices = []string{
	"Nexus One", "Nexus S", "Galaxy S", "Galaxy Tab", "Droid", "Droid 2",
	"Droid X", "Desire", "Desire HD", "Evo 4G", "Incredible", "Xoom",
	"N900", "Streak", "Optimus One", "Xperia X10", "Milestone",
}

// SupportedLocales are the locale codes builds are shipped in
var SupportedLocales = []string{
	"af", "ar", "be", "bg", "bn-BD", "ca", "cs", "cy", "da", "de", "el",
	"en-GB", "en-US", "eo", "es-AR", "es-CL", "es-ES", "es-MX", "et", "eu",
	"fa", "fi", "fr", "fy-NL", "ga-IE", "gl", "gu-IN", "he", "hi-IN", "hr",
	"hu", "id", "is", "it", "ja", "ka", "kk", "kn", "ko", "lt", "lv", "mk",
	"ml", "mr", "nb-NO", "nl", "nn-NO", "pa-IN", "pl", "pt-BR", "pt-PT",
	"rm", "ro", "ru", "si", "sk", "sl", "sq", "sr", "sv-SE", "ta", "te",
	"th", "tr", "uk", "vi", "zh-CN", "zh-TW",
}

// Provider enumerates the vocabularies facet labels are decoded from
type Provider interface {
	Platforms() []string
	Manufacturers() []string
	Devices() []string
	Locales() []string
}

type static struct{}

// Static returns the built in vocabularies
func Static() Provider { return static{} }

func (static) Platforms() []string {
	out := make([]string, len(PlatformUsage))
	for i, p := range PlatformUsage {
		out[i] = p.Short
	}
	return out
}

func (static) Manufacturers() []string { return append([]string(nil), KnownManufacturers...) }
func (static) Devices() []string       { return append([]string(nil), KnownDevices...) }
func (static) Locales() []string       { return append([]string(nil), SupportedLocales...) }

// PlatformPretty returns the display name of a platform short name, or short itself
func PlatformPretty(short string) string {
	for _, p := range PlatformUsage {
		if p.Short == short {
			return p.Pretty
		}
	}
	return short
}

// LocaleName returns the locale's name in its own language; unparseable codes come back unchanged
func LocaleName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return code
}
