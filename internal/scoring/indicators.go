package scoring

// Indicator phrase lists. Scores and thresholds tied to these are
// load-bearing business rules; keep the lists and weights stable.

// Understanding-quality tiers. Only the strongest matched tier counts.
var (
	strongIndicators = []string{"efficiently", "optimal", "because", "therefore", "results in", "leads to", "causes"}
	mediumIndicators = []string{"works by", "functions by", "operates by", "used for", "helps to", "allows"}
	weakIndicators   = []string{"is", "are", "has", "have", "contains", "includes"}
)

const (
	strongTierScore = 0.8
	mediumTierScore = 0.6
	weakTierScore   = 0.4
)

// Absolutist language that tends to accompany misconceptions.
var absolutistIndicators = []string{
	"always", "never", "impossible", "cannot", "must be", "has to be",
	"only way", "best way", "worst way", "fastest", "slowest",
}

// Hedging phrases; more than two of these marks high uncertainty.
var uncertaintyIndicators = []string{
	"i think", "maybe", "probably", "might be", "could be", "seems like",
	"i believe", "i guess", "not sure", "uncertain",
}

var causalIndicators = []string{"because", "therefore", "since", "due to"}

var exampleIndicators = []string{"example", "for instance", "such as"}

// functionWords are never treated as misconception cues even when a
// misconception phrasing contains them.
var functionWords = map[string]struct{}{
	"with": {}, "that": {}, "this": {}, "than": {}, "then": {},
	"from": {}, "into": {}, "when": {}, "what": {}, "were": {},
	"will": {}, "being": {}, "have": {},
}
