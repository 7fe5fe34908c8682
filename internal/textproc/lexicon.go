package textproc

// Fixed lexicons for extraction. These are part of the scoring contract:
// changing them changes scores, so keep them stable.

// stopWords is a compact English stop-word list. Tokens in preserveWords
// are never dropped even when they collide with an entry here.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "been": {}, "being": {}, "have": {}, "has": {}, "had": {},
	"do": {}, "does": {}, "did": {}, "will": {}, "would": {}, "could": {},
	"should": {}, "may": {}, "might": {}, "must": {}, "can": {},
	"this": {}, "that": {}, "these": {}, "those": {}, "there": {},
	"i": {}, "you": {}, "he": {}, "she": {}, "it": {}, "we": {},
	"they": {}, "me": {}, "him": {}, "her": {}, "us": {}, "them": {},
	"its": {}, "their": {}, "our": {}, "your": {}, "my": {}, "as": {},
	"if": {}, "then": {}, "than": {}, "so": {}, "not": {}, "no": {},
	"all": {}, "any": {}, "each": {}, "very": {}, "just": {}, "also": {},
	"into": {}, "from": {}, "about": {}, "when": {}, "where": {},
	"which": {}, "who": {}, "what": {}, "how": {}, "why": {}, "more": {},
	"most": {}, "other": {}, "some": {}, "such": {}, "only": {},
	"own": {}, "same": {}, "both": {}, "while": {}, "because": {},
	"between": {}, "through": {}, "over": {}, "under": {}, "again": {},
}

// preserveWords are domain terms that must survive stop-word filtering
// even when short or otherwise filterable.
var preserveWords = map[string]struct{}{
	"tree": {}, "hash": {}, "process": {}, "tcp": {}, "ip": {},
	"node": {}, "heap": {}, "key": {}, "map": {}, "set": {},
	"graph": {}, "queue": {}, "stack": {}, "bit": {}, "log": {},
	"sort": {}, "lock": {}, "cpu": {}, "ram": {}, "api": {},
	"sql": {}, "acid": {}, "udp": {}, "dns": {}, "os": {},
}

// Structural cue lists. Single-word cues are matched on token
// boundaries; multi-word cues by substring.
var (
	definitionCues = []string{"is", "means", "refers to", "defined as", "is called", "known as"}
	exampleCues    = []string{"for example", "for instance", "such as", "like", "e.g."}
	processCues    = []string{"first", "then", "next", "after", "finally", "step", "process", "repeatedly"}
	comparisonCues = []string{"unlike", "compared to", "versus", "whereas", "in contrast", "similar to", "different from"}
)
