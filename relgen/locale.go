package relgen

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// localeData holds one locale's persona vocabulary. Instances are built
// once by newLocaleData and held by value on the Synthesizer — never
// package-level mutable state — so two Synthesizers with different locales
// never interfere.
type localeData struct {
	locale        Locale
	lang          language.Tag
	firstNames    []string
	lastNames     []string
	streetNames   []string
	cities        []string
	regions       []string
	companySuffix []string
	emailDomains  []string
	postcodeFmt   string // pattern-expander pattern, e.g. "#####" or "A# #AA"
	phoneFmt      string
}

var commonFirstNames = []string{
	"Aisha", "Amara", "Amelia", "Ananya", "Anastasia", "Antonio", "Arjun", "Astrid",
	"Camille", "Carmen", "Carlos", "Chen", "Diego", "Dimitri", "Elena", "Emma",
	"Fatima", "Gabriela", "Giulia", "Greta", "Hans", "Hassan", "Henry", "Hiroshi",
	"Ingrid", "Isabella", "James", "Jean", "Katarina", "Khalid", "Kim", "Kofi",
	"Lars", "Layla", "Lee", "Lin", "Luca", "Lucia", "Marco", "Marie", "Mateo",
	"Mei", "Miguel", "Ming", "Nguyen", "Nia", "Niklas", "Oliver", "Omar", "Priya",
	"Raj", "Sakura", "Santiago", "Sofia", "Sophia", "Valentina", "Viktor", "Wei",
	"William", "Yuki", "Yusuf", "Zara", "Zofia",
}

var commonLastNames = []string{
	"Ahmed", "Ali", "Becker", "Bernard", "Bianchi", "Brown", "Chen", "Choi",
	"Davies", "Dubois", "Dupont", "Esposito", "Evans", "Ferrari", "Fischer",
	"García", "González", "Gupta", "Hassan", "Huang", "Ibrahim", "Ito", "Ivanov",
	"Johnson", "Jung", "Kim", "Kobayashi", "Kowalski", "Kumar", "Laurent",
	"Lebedev", "Lee", "Leroy", "Li", "Liu", "López", "Mahmoud", "Martin",
	"Martínez", "Meyer", "Mohamed", "Moreau", "Müller", "Nakamura", "Nowak",
	"Park", "Patel", "Pérez", "Petrov", "Ramírez", "Reddy", "Rodríguez",
	"Romano", "Rossi", "Sánchez", "Schmidt", "Schneider", "Sharma", "Singh",
	"Smith", "Suzuki", "Takahashi", "Tanaka", "Taylor", "Wagner", "Wang",
	"Watanabe", "Weber", "Wilson", "Yamamoto", "Zhang", "Zhao",
}

func newLocaleData(l Locale) localeData {
	base := localeData{
		locale:       l,
		firstNames:   commonFirstNames,
		lastNames:    commonLastNames,
		emailDomains: []string{"example.com", "test.invalid", "mail.example.org"},
	}
	switch l {
	case LocaleEnGB:
		base.lang = language.BritishEnglish
		base.streetNames = []string{"High Street", "Church Road", "Station Road", "Victoria Road"}
		base.cities = []string{"London", "Manchester", "Birmingham", "Leeds", "Bristol"}
		base.regions = []string{"Greater London", "West Midlands", "Yorkshire"}
		base.companySuffix = []string{"Ltd", "PLC", "Group"}
		base.postcodeFmt = "XX# #XX"
		base.phoneFmt = "+44 {d:4} {d:6}"
	case LocaleDeDE:
		base.lang = language.German
		base.firstNames = []string{"Hans", "Greta", "Lars", "Ingrid", "Klaus", "Sabine", "Jürgen", "Ute"}
		base.lastNames = []string{"Müller", "Schmidt", "Schneider", "Fischer", "Weber", "Meyer", "Wagner", "Becker"}
		base.streetNames = []string{"Hauptstraße", "Bahnhofstraße", "Kirchweg", "Lindenallee"}
		base.cities = []string{"Berlin", "München", "Hamburg", "Köln", "Frankfurt"}
		base.regions = []string{"Bayern", "Hessen", "Sachsen"}
		base.companySuffix = []string{"GmbH", "AG", "KG"}
		base.postcodeFmt = "{d:5}"
		base.phoneFmt = "+49 {d:3} {d:7}"
	case LocaleFrFR:
		base.lang = language.French
		base.firstNames = []string{"Camille", "Antoine", "Marie", "Jean", "Chloé", "Louis", "Léa", "Hugo"}
		base.lastNames = []string{"Dubois", "Dupont", "Laurent", "Leroy", "Martin", "Bernard", "Moreau", "Simon"}
		base.streetNames = []string{"Rue de la Paix", "Avenue Victor Hugo", "Rue du Commerce"}
		base.cities = []string{"Paris", "Lyon", "Marseille", "Toulouse", "Nantes"}
		base.regions = []string{"Île-de-France", "Occitanie", "Bretagne"}
		base.companySuffix = []string{"SARL", "SA", "SAS"}
		base.postcodeFmt = "{d:5}"
		base.phoneFmt = "+33 # {d:8}"
	case LocaleEnCA:
		base.lang = language.English
		base.streetNames = []string{"Maple Street", "King Street", "Queen Street", "College Avenue"}
		base.cities = []string{"Toronto", "Montreal", "Vancouver", "Calgary", "Ottawa"}
		base.regions = []string{"Ontario", "Quebec", "British Columbia", "Alberta"}
		base.companySuffix = []string{"Inc.", "Ltd.", "Co."}
		base.postcodeFmt = "XA# AXA"
		base.phoneFmt = "+1 ({d:3}) {d:3}-{d:4}"
	case LocaleEnAU:
		base.lang = language.English
		base.streetNames = []string{"George Street", "Collins Street", "Smith Street", "Bourke Street"}
		base.cities = []string{"Sydney", "Melbourne", "Brisbane", "Perth", "Adelaide"}
		base.regions = []string{"New South Wales", "Victoria", "Queensland", "Western Australia"}
		base.companySuffix = []string{"Pty Ltd", "Group"}
		base.postcodeFmt = "{d:4}"
		base.phoneFmt = "+61 # {d:4} {d:4}"
	default: // en_US and unrecognized locales
		base.lang = language.AmericanEnglish
		base.streetNames = []string{"Main Street", "Oak Avenue", "Maple Drive", "Cedar Lane", "Washington Street"}
		base.cities = []string{"Springfield", "Franklin", "Clinton", "Georgetown", "Madison"}
		base.regions = []string{"California", "Texas", "New York", "Florida", "Illinois"}
		base.companySuffix = []string{"Inc.", "LLC", "Corp."}
		base.postcodeFmt = "{d:5}"
		base.phoneFmt = "+1 ({d:3}) {d:3}-{d:4}"
	}
	return base
}

// titleCaser returns the locale-correct title caser — Turkish-safe, unlike
// strings.Title.
func (l localeData) titleCaser() cases.Caser {
	return cases.Title(l.lang)
}
