package score

// letterFrequency holds English unigram frequencies in percent, indexed by
// letter - 'A'.
var letterFrequency = [26]float64{
	8.167,  // A
	1.492,  // B
	2.782,  // C
	4.253,  // D
	12.702, // E
	2.228,  // F
	2.015,  // G
	6.094,  // H
	6.966,  // I
	0.153,  // J
	0.772,  // K
	4.025,  // L
	2.406,  // M
	6.749,  // N
	7.507,  // O
	1.929,  // P
	0.095,  // Q
	5.987,  // R
	6.327,  // S
	9.056,  // T
	2.758,  // U
	0.978,  // V
	2.360,  // W
	0.150,  // X
	1.974,  // Y
	0.074,  // Z
}

// commonBigrams are the 30 most frequent English letter pairs.
var commonBigrams = newSet(
	"TH", "HE", "IN", "ER", "AN", "RE", "ON", "AT", "EN", "ND",
	"TI", "ES", "OR", "TE", "OF", "ED", "IS", "IT", "AL", "AR",
	"ST", "TO", "NT", "NG", "SE", "HA", "AS", "OU", "IO", "LE",
)

const vowels = "AEIOU"

// veryCommonShort covers 2-3 letter words solvers see constantly.
var veryCommonShort = newSet(
	// two letters
	"AH", "AM", "AN", "AS", "AT", "AX", "BE", "BY", "DO", "GO",
	"HE", "HI", "IF", "IN", "IS", "IT", "ME", "MY", "NO", "OF",
	"OH", "OK", "ON", "OR", "OX", "QI", "SO", "TO", "UP", "US",
	"WE",
	// three letters
	"ACE", "AGE", "AID", "AIR", "ALE", "ALL", "AND", "ANY", "APE", "ARE",
	"ART", "ASH", "ATE", "BOY", "BUT", "CAN", "CAT", "DAY", "DID", "DOG",
	"EAR", "EAT", "EEL", "EGG", "END", "ERA", "ERE", "EVE", "FOR", "GET",
	"HAD", "HAS", "HER", "HIM", "HIS", "HOW", "ICE", "ITS", "LET", "MAN",
	"NEW", "NOT", "NOW", "OAR", "ODE", "OLD", "ONE", "ORE", "OUR", "OUT",
	"OWE", "PUT", "SAY", "SEA", "SEE", "SHE", "TEA", "THE", "TOO", "TWO",
	"USE", "WAS", "WAY", "WHO", "YES", "YOU",
)

var veryCommonFour = newSet(
	"ALSO", "ALOE", "AREA", "ARIA", "BACK", "BEEN", "COME", "EACH", "EASE", "EAST",
	"EDGE", "ERAS", "EVEN", "GOOD", "HAVE", "HERE", "HOME", "IDEA", "JUST", "KNOW",
	"LIFE", "LIKE", "LONG", "LOVE", "MAKE", "MANY", "MORE", "MUCH", "NAME", "NOTE",
	"ONLY", "OVER", "RATE", "ROSE", "SEAT", "SEEN", "SOME", "SUCH", "TAKE", "THAN",
	"THAT", "THEM", "THEY", "THIS", "TIME", "TONE", "TREE", "VERY", "WANT", "WELL",
	"WERE", "WHEN", "WILL", "WITH", "YOUR",
)

var veryCommonFive = newSet(
	"ABOUT", "AFTER", "AGAIN", "ALERT", "ALONE", "ARENA", "ARISE", "ASIDE", "BEING", "COULD",
	"EARTH", "EVERY", "FIRST", "GREAT", "HEART", "HOUSE", "IRATE", "LARGE", "MIGHT", "NEVER",
	"OCEAN", "OFTEN", "OTHER", "PLACE", "RAISE", "RIGHT", "SHALL", "SMALL", "STATE", "STILL",
	"STONE", "TEARS", "THEIR", "THERE", "THESE", "THINK", "THOSE", "UNDER", "WHERE", "WHICH",
	"WHILE", "WORLD", "WOULD",
)

// Proper names that recur in published grids.
var crosswordNamesFour = newSet(
	"ABEL", "ADAM", "ALAN", "ALDA", "AMOS", "ANNE", "ARLO", "ASTA", "EDNA", "EERO",
	"ELIA", "ELLA", "ELMO", "ELSA", "ENOS", "ERIE", "ERIN", "ESAU", "ETTA", "EVAN",
	"EZRA", "IRMA", "IVAN", "LEON", "NEIL", "NOAH", "ODIN", "OLAF", "OMAR", "OREL",
	"OSLO", "OTIS", "OTTO", "RENO", "ROME", "TESS",
)

var crosswordNamesFive = newSet(
	"ALICE", "ANITA", "ARIEL", "ASTOR", "DIANA", "EDGAR", "ELENA", "ELIOT", "ELLEN", "ELTON",
	"ENOLA", "ERNIE", "ESTES", "IDAHO", "IRENE", "LORNA", "NOLAN", "OPRAH", "ORSON", "OSCAR",
	"RENEE", "ROSIE", "SELMA", "TESLA",
)

var modernTermsFour = newSet(
	"APPS", "BLOG", "BYTE", "CHAT", "CHIP", "CODE", "DATA", "FEED", "GIFS", "HACK",
	"LINK", "MEME", "MEMO", "POST", "SPAM", "STAN", "SYNC", "TEXT", "VAPE", "VLOG",
	"WIFI", "ZOOM",
)

var modernTermsFive = newSet(
	"AUDIO", "BLOGS", "CLOUD", "CYBER", "DRONE", "EBOOK", "EMAIL", "EMOJI", "LASER", "LOGIN",
	"MEMES", "PHONE", "PIXEL", "ROBOT", "TWEET", "VIDEO", "VIRAL", "VLOGS",
)

type set map[string]struct{}

func newSet(words ...string) set {
	s := make(set, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

func (s set) has(w string) bool {
	_, ok := s[w]
	return ok
}
