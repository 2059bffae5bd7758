package heuristics

// clickbaitPhrases are sensationalism markers commonly found in fabricated
// English-language news. Matched case-insensitively as substrings; the list
// order is the order of MatchedPhrases in the result.
var clickbaitPhrases = []string{
	"shocking", "you won't believe", "exposed", "secret revealed",
	"government hiding", "doctors hate", "one weird trick",
	"breaking:", "urgent:", "share before deleted",
	"mainstream media won't tell you", "what they don't want you to know",
	"miracle cure", "exposed truth", "shocking revelation",
}

// nepaliSensationalPhrases are Nepal-specific sensationalism markers.
// Devanagari has no letter case, so these match case-sensitively against the
// NFC-normalized original text.
var nepaliSensationalPhrases = []string{
	"सनसनी", "खुलासा", "गोप्य", "चौंकाउने",
	"शेयर गर्नुहोस्", "भाइरल", "सत्य यस्तो",
}
