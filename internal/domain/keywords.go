package domain

import "strings"

// Process-wide read-only keyword tables. Built once at init; callers must
// never mutate them. Slice order is significant wherever ties are broken
// by declaration order.

// categoryOrder fixes the tie-break walk for category scoring. Escalation
// is excluded because any escalation hit preempts the comparison.
var categoryOrder = []Category{CategoryTechnical, CategoryBilling, CategoryAccount}

var categoryKeywords = map[Category][]string{
	CategoryTechnical: {
		"login", "password", "error", "bug", "crash", "not working", "technical",
		"app", "mobile", "website", "connection", "network", "slow", "freeze",
		"qr code", "scan", "entry", "ticket", "reservation", "authentication",
	},
	CategoryBilling: {
		"payment", "subscription", "billing", "refund", "charge", "cost", "premium",
		"monthly", "renewal", "cancel", "money", "credit", "debit", "card",
		"pricing", "fee", "invoice", "receipt",
	},
	CategoryAccount: {
		"account", "profile", "preferences", "settings", "transfer", "privacy",
		"data", "information", "update", "change", "delete", "export",
		"security", "password", "email", "personal", "details",
	},
	CategoryEscalation: {
		"urgent", "emergency", "critical", "immediately", "human", "agent",
		"representative", "supervisor", "manager", "complaint", "dispute",
		"legal", "fraud", "unauthorized", "hacked", "compromised",
	},
}

// priorityOrder walks from most to least severe so a tie at the maximum
// count resolves to the more severe bucket.
var priorityOrder = []Priority{PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow}

var priorityKeywords = map[Priority][]string{
	PriorityUrgent: {"urgent", "emergency", "critical", "immediately", "asap", "now"},
	PriorityHigh:   {"important", "priority", "high", "serious", "broken", "not working"},
	PriorityMedium: {"issue", "problem", "question", "help", "support"},
	PriorityLow:    {"inquiry", "information", "general", "curious", "wondering"},
}

var complexityKeywords = map[Complexity][]string{
	ComplexityComplex: {
		"multiple", "several", "various", "different", "complex", "complicated",
		"detailed", "comprehensive", "extensive", "thorough", "multiple issues",
		"combination", "related", "connected", "interdependent",
	},
	ComplexityModerate: {
		"issue", "problem", "trouble", "difficulty", "challenge", "specific",
		"particular", "certain", "one", "single", "individual",
	},
	ComplexitySimple: {
		"simple", "basic", "quick", "easy", "straightforward", "just",
		"only", "merely", "simple question", "quick question",
	},
}

// EscalationKeywords trigger retriever-side escalation regardless of the
// confidence band (rule 5c) and force category escalation in the classifier.
var EscalationKeywords = []string{
	"urgent", "emergency", "critical", "immediately", "human", "agent",
	"representative", "supervisor", "manager", "complaint", "dispute",
	"legal", "fraud", "unauthorized", "hacked", "compromised",
}

// urgencyWords feed the continuous urgency score, capped at +0.3 total.
var urgencyWords = []string{
	"urgent", "emergency", "critical", "immediately", "asap", "now",
	"broken", "not working",
}

// Word groups for the independent requires-escalation check.
var (
	humanHandoffWords  = []string{"human", "agent", "representative", "supervisor", "manager"}
	legalSecurityWords = []string{"legal", "fraud", "unauthorized", "hacked", "compromised", "dispute", "complaint"}
	emergencyWords     = []string{"urgent", "emergency", "critical", "immediately", "asap"}
)

// StopWords are filtered out of free-text keyword extraction. The scorer's
// overlap formula uses raw tokens; this table serves keyword summaries for
// logging and the corpus seeding path.
var StopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for", "of", "with",
		"by", "is", "are", "was", "were", "be", "been", "have", "has", "had", "do", "does",
		"did", "will", "would", "could", "should", "may", "might", "can", "this", "that",
		"these", "those", "i", "you", "he", "she", "it", "we", "they", "me", "him", "her",
		"us", "them", "my", "your", "his", "its", "our", "their", "mine", "yours",
		"hers", "ours", "theirs", "what", "when", "where", "why", "how", "who",
		"which", "whom", "whose", "if", "then", "else", "because", "since", "while",
		"before", "after", "during", "until", "unless", "although", "though", "even",
		"as", "so", "than", "such", "very", "too", "just", "only", "also",
		"still", "again", "once", "twice", "first", "second", "third", "last",
		"next", "previous", "current", "new", "old", "good", "bad", "big", "small",
		"high", "low", "long", "short", "fast", "slow", "easy", "hard", "simple",
		"complex", "important", "urgent", "critical", "necessary", "optional",
	} {
		StopWords[w] = struct{}{}
	}
}

// containsAny reports whether text contains any of the given phrases.
// Matching is plain substring containment over already-lowercased text,
// so multi-word phrases like "not working" match as written.
func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

func countHits(text string, phrases []string) int {
	n := 0
	for _, p := range phrases {
		if strings.Contains(text, p) {
			n++
		}
	}
	return n
}
