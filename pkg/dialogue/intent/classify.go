package intent

import (
	"regexp"
	"strings"
)

// Command is the leading intent class of an utterance
type Command string

const (
	CommandTrack     Command = "track_order"
	CommandList      Command = "list_products"
	CommandSelect    Command = "select_product"
	CommandAddToCart Command = "add_to_cart"
	CommandViewCart  Command = "view_cart"
	CommandCheckout  Command = "checkout"
	CommandConfirm   Command = "confirm"
	CommandCancel    Command = "cancel"
	CommandRecommend Command = "recommend_gift"
	CommandGreeting  Command = "greeting"
	CommandFallback  Command = "fallback"
)

// Classification is the full parse of one utterance
type Classification struct {
	Command   Command
	OrderCode string
	Indices   []int
	Filter    Filter
}

var commandRegexes = map[Command]*regexp.Regexp{
	CommandTrack:     regexp.MustCompile(`(?i)\b(?:track|status|where)\b.*?\b((?:SV|ORDER)[-_]?[A-Za-z0-9-]{4,})\b`),
	CommandList:      regexp.MustCompile(`(?i)\b(?:show|list|get|browse|display|see|view)\b.*?\b(?:products?|gifts?|items?|catalog|options?|collection)\b|^menu$`),
	CommandSelect:    regexp.MustCompile(`(?i)\b(?:select|choose|pick|take|go with)\b`),
	CommandAddToCart: regexp.MustCompile(`(?i)\badd\b.*?\b(?:cart|basket|these|them|it|both|all)\b|^add$|^buy$|\bbuy\s+(?:it|this|these|them)\b`),
	CommandViewCart:  regexp.MustCompile(`(?i)^cart$|\b(?:view|show|open|see)\b.*?\b(?:my\s+)?cart\b|^my cart$`),
	CommandCheckout:  regexp.MustCompile(`(?i)\bcheck\s?out\b|\bplace\s+(?:my\s+)?order\b|\bproceed\s+to\s+(?:pay|buy|checkout)\b`),
	CommandConfirm:   regexp.MustCompile(`(?i)^\s*(?:confirm|confirmed|yes|yep|yeah|y|ok|okay|sure|place it|go ahead|done)\s*[.!]?\s*$`),
	CommandCancel:    regexp.MustCompile(`(?i)^\s*(?:cancel|no|nope|stop|abort|never\s?mind|forget it)\s*[.!]?\s*$`),
	CommandRecommend: regexp.MustCompile(`(?i)\b(?:gift|gifts|present|presents|recommend|suggest|suggestion|idea|ideas|surprise)\b`),
	CommandGreeting:  regexp.MustCompile(`(?i)^\s*(?:hi|hii+|hello|hey|namaste|good\s+(?:morning|afternoon|evening))\b|\b(?:write|compose)\b.*?\b(?:message|poem|wish|note|card)\b`),
}

var bareOrderCodeRegex = regexp.MustCompile(`(?i)^\s*(SV-[A-Za-z0-9-]{4,})\s*$`)

// Classify parses one utterance against the prioritized command classes;
// the first match wins and later classes are not considered. shownCount
// bounds the ordinal resolution. Classify never fails: unrecognized
// input yields CommandFallback.
func Classify(text string, shownCount int) Classification {
	trimmed := strings.TrimSpace(text)
	cls := Classification{Command: CommandFallback}
	if trimmed == "" {
		return cls
	}

	// Order tracking short-circuits everything else
	if m := commandRegexes[CommandTrack].FindStringSubmatch(trimmed); m != nil {
		cls.Command = CommandTrack
		cls.OrderCode = strings.ToUpper(m[1])
		return cls
	}
	if m := bareOrderCodeRegex.FindStringSubmatch(trimmed); m != nil {
		cls.Command = CommandTrack
		cls.OrderCode = strings.ToUpper(m[1])
		return cls
	}

	// A browse request with no constraining attributes is a plain listing;
	// once the utterance carries filters it becomes a recommendation query
	if commandRegexes[CommandList].MatchString(trimmed) {
		f := ParseFilter(trimmed)
		if f.IsZero() {
			cls.Command = CommandList
			return cls
		}
		cls.Command = CommandRecommend
		cls.Filter = f
		return cls
	}

	// Ordinal selection: an explicit select verb, or an utterance that is
	// nothing but an ordinal reference ("2", "1 and 3", "the first one")
	if commandRegexes[CommandSelect].MatchString(trimmed) || HasOrdinalShape(trimmed) {
		cls.Command = CommandSelect
		cls.Indices = Ordinals(trimmed, shownCount)
		return cls
	}

	for _, cmd := range []Command{CommandAddToCart, CommandViewCart, CommandCheckout, CommandConfirm, CommandCancel} {
		if commandRegexes[cmd].MatchString(trimmed) {
			cls.Command = cmd
			return cls
		}
	}

	if commandRegexes[CommandRecommend].MatchString(trimmed) {
		cls.Command = CommandRecommend
		cls.Filter = ParseFilter(trimmed)
		return cls
	}

	if commandRegexes[CommandGreeting].MatchString(trimmed) {
		cls.Command = CommandGreeting
		return cls
	}

	return cls
}
