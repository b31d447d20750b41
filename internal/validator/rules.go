package validator

import (
	"regexp"
	"strings"
)

// SafeSuggestions are offered whenever input is rejected as dangerous.
var SafeSuggestions = []string{"cooking", "drawing", "photography"}

var dangerousKeywords = []string{
	"bomb", "bombs", "explosive", "explosives", "weapon", "weapons", "gun making",
	"kill", "killing", "murder", "assassination", "torture", "poison", "poisoning",
	"suicide", "self harm", "self-harm", "cutting myself",
	"drug", "drugs", "cocaine", "heroin", "meth", "methamphetamine", "drug dealing",
	"hacking", "hack", "phishing", "malware", "ransomware", "ddos", "carding",
	"stealing", "theft", "shoplifting", "burglary", "robbery", "fraud", "scam", "scamming",
	"counterfeit", "money laundering", "arson", "terrorism", "terrorist",
	"porn", "pornography", "sex", "sexual", "nude", "nudes", "onlyfans", "escort",
	"stalking", "kidnapping", "human trafficking", "animal cruelty", "dog fighting",
	"gambling", "betting",
}

var dangerousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bhow to (make|build|create) (a |an )?(bomb|weapon|explosive|poison|drug)`),
	regexp.MustCompile(`\b(hurt|harm|attack|kill)(ing)? (people|someone|others|animals)\b`),
	regexp.MustCompile(`\b(break|breaking) into\b`),
	regexp.MustCompile(`\bpick(ing)? ?locks? (of|to) (houses|cars|doors)\b`),
	regexp.MustCompile(`\b(cook|cooking|making) (meth|crack)\b`),
	regexp.MustCompile(`\b(hack|hacking|crack|cracking) (into |someone'?s? )?(account|password|wifi|phone|email)s?\b`),
}

var dangerousKeywordRegexp = buildKeywordRegexp(dangerousKeywords)

func buildKeywordRegexp(words []string) *regexp.Regexp {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`\b(` + strings.Join(quoted, "|") + `)\b`)
}

func isDangerous(normalized string) bool {
	if dangerousKeywordRegexp.MatchString(normalized) {
		return true
	}
	for _, p := range dangerousPatterns {
		if p.MatchString(normalized) {
			return true
		}
	}
	return false
}

type complexHobby struct {
	reason      string
	suggestions []string
}

// complexHobbies cannot reasonably be started in a 7-day plan.
var complexHobbies = map[string]complexHobby{
	"quantum physics":       {"requires years of advanced mathematics", []string{"astronomy", "chess", "coding"}},
	"rocket science":        {"requires formal engineering education", []string{"model rocketry", "astronomy", "drone flying"}},
	"brain surgery":         {"is a medical specialty requiring a decade of training", []string{"first aid", "anatomy drawing", "yoga"}},
	"surgery":               {"is a medical specialty requiring years of training", []string{"first aid", "anatomy drawing", "yoga"}},
	"medicine":              {"requires a medical degree", []string{"first aid", "herbal gardening", "meditation"}},
	"becoming a doctor":     {"requires a medical degree", []string{"first aid", "meditation", "fitness"}},
	"law":                   {"requires a law degree and bar admission", []string{"public speaking", "creative writing", "debate"}},
	"flying planes":         {"requires certified flight training", []string{"drone flying", "model airplanes", "flight simulation"}},
	"pilot training":        {"requires certified flight training", []string{"drone flying", "model airplanes", "flight simulation"}},
	"nuclear engineering":   {"requires advanced engineering education", []string{"electronics", "robotics", "coding"}},
	"architecture":          {"requires a professional degree and licensing", []string{"sketching", "woodworking", "3d modeling"}},
	"astronaut training":    {"requires selection by a space agency", []string{"astronomy", "fitness", "model rocketry"}},
	"dentistry":             {"requires a dental degree", []string{"first aid", "drawing", "yoga"}},
	"stock trading":         {"carries real financial risk for beginners", []string{"budgeting", "chess", "writing"}},
	"cryptocurrency mining": {"requires significant hardware and financial risk", []string{"coding", "electronics", "chess"}},
	"skydiving":             {"requires certified instruction and supervision", []string{"rock climbing", "hiking", "yoga"}},
	"scuba diving":          {"requires certified instruction and equipment", []string{"swimming", "snorkeling", "yoga"}},
}

// lookupComplex returns the complex-hobby entry whose key appears in the input.
// The longest matching key wins so "brain surgery" beats "surgery".
func lookupComplex(normalized string) (string, complexHobby, bool) {
	var bestKey string
	for key := range complexHobbies {
		if containsPhrase(normalized, key) && len(key) > len(bestKey) {
			bestKey = key
		}
	}
	if bestKey == "" {
		return "", complexHobby{}, false
	}
	return bestKey, complexHobbies[bestKey], true
}

func containsPhrase(s, phrase string) bool {
	if s == phrase {
		return true
	}
	return strings.HasPrefix(s, phrase+" ") ||
		strings.HasSuffix(s, " "+phrase) ||
		strings.Contains(s, " "+phrase+" ")
}

// KnownHobbies is the static list used for exact, fuzzy and substring matching.
var KnownHobbies = []string{
	"guitar", "piano", "ukulele", "violin", "drums", "singing", "music production",
	"drawing", "painting", "watercolor", "sketching", "calligraphy", "digital art", "pottery",
	"photography", "videography", "cooking", "baking", "coffee brewing",
	"gardening", "knitting", "crochet", "sewing", "embroidery", "woodworking", "origami",
	"yoga", "meditation", "running", "cycling", "swimming", "hiking", "rock climbing",
	"dancing", "skateboarding", "surfing", "fitness", "martial arts", "boxing",
	"chess", "coding", "web development", "creative writing", "journaling", "poetry",
	"reading", "language learning", "spanish", "french", "japanese",
	"astronomy", "birdwatching", "fishing", "camping", "juggling", "magic tricks",
	"candle making", "soap making", "jewelry making", "scrapbooking", "podcasting",
	"public speaking", "3d printing", "electronics", "robotics", "drone flying",
	"model building", "puzzles", "board games", "first aid",
}

// hobbyAliases maps common phrasings onto a known hobby.
var hobbyAliases = map[string]string{
	"guitar playing":  "guitar",
	"playing guitar":  "guitar",
	"acoustic guitar": "guitar",
	"electric guitar": "guitar",
	"piano playing":   "piano",
	"keyboard":        "piano",
	"cook":            "cooking",
	"bake":            "baking",
	"paint":           "painting",
	"draw":            "drawing",
	"programming":     "coding",
	"software":        "coding",
	"weightlifting":   "fitness",
	"working out":     "fitness",
	"gym":             "fitness",
	"jogging":         "running",
	"writing":         "creative writing",
	"photo":           "photography",
	"photos":          "photography",
	"dance":           "dancing",
	"sing":            "singing",
	"knit":            "knitting",
	"bird watching":   "birdwatching",
	"yoga practice":   "yoga",
	"mindfulness":     "meditation",
}

// fillerPrefixes are stripped before matching ("learn to play guitar" -> "guitar").
var fillerPrefixes = []string{
	"i want to learn ", "i want to ", "i'd like to learn ", "learn how to ", "learning how to ",
	"how to ", "learn to ", "learning to ", "learn ", "learning ", "play the ", "playing the ",
	"play ", "do ", "doing ", "the ",
}

// suggestionPool feeds random suggestions for unrecognized input.
var suggestionPool = []string{
	"guitar", "cooking", "drawing", "photography", "yoga", "gardening",
	"knitting", "chess", "coding", "painting", "baking", "dancing",
	"meditation", "creative writing", "origami", "calligraphy",
}

var knownHobbySet = func() map[string]bool {
	m := make(map[string]bool, len(KnownHobbies))
	for _, h := range KnownHobbies {
		m[h] = true
	}
	return m
}()
