package league

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

var ErrInvalidLeague = errors.New("unknown league")

type Key string

const (
	NFL Key = "NFL"
	NBA Key = "NBA"
	NHL Key = "NHL"
	MLB Key = "MLB"
	MLS Key = "MLS"
	EPL Key = "EPL"
	F1  Key = "F1"
)

// Info is the remote path and cosmetic styling for a league.
type Info struct {
	Key         Key
	Sport       string
	Competition string
	Name        string
	Emoji       string
	Color       int
}

var registry = map[Key]Info{
	NFL: {Key: NFL, Sport: "football", Competition: "nfl", Name: "NFL", Emoji: "🏈", Color: 0x013369},
	NBA: {Key: NBA, Sport: "basketball", Competition: "nba", Name: "NBA", Emoji: "🏀", Color: 0x1d428a},
	NHL: {Key: NHL, Sport: "hockey", Competition: "nhl", Name: "NHL", Emoji: "🏒", Color: 0x111111},
	MLB: {Key: MLB, Sport: "baseball", Competition: "mlb", Name: "MLB", Emoji: "⚾", Color: 0x002d72},
	MLS: {Key: MLS, Sport: "soccer", Competition: "usa.1", Name: "MLS", Emoji: "⚽", Color: 0x0b6e4f},
	EPL: {Key: EPL, Sport: "soccer", Competition: "eng.1", Name: "Premier League", Emoji: "⚽", Color: 0x3d195b},
	F1:  {Key: F1, Sport: "racing", Competition: "f1", Name: "Formula 1", Emoji: "🏎", Color: 0xe10600},
}

var order = []Key{NFL, NBA, NHL, MLB, MLS, EPL, F1}

// All returns the supported leagues in command order.
func All() []Key {
	keys := make([]Key, len(order))
	copy(keys, order)
	return keys
}

func (k Key) Info() (Info, bool) {
	info, ok := registry[k]
	return info, ok
}

// Command is the lowercase shortcut token, e.g. "nfl".
func (k Key) Command() string {
	return strings.ToLower(string(k))
}

func (k Key) String() string {
	return string(k)
}

// Parse resolves a shortcut token such as "nba" or "/NBA". Unknown tokens
// fail with ErrInvalidLeague, carrying the closest known shortcut if any.
func Parse(token string) (Key, error) {
	normalized := strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(token), "/"))
	if _, ok := registry[Key(normalized)]; ok {
		return Key(normalized), nil
	}

	if suggestion, ok := Suggest(token); ok {
		return "", fmt.Errorf("%w: %q (did you mean /%s?)", ErrInvalidLeague, token, suggestion.Command())
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidLeague, token)
}

// Suggest returns the shortcut closest to token by edit distance.
func Suggest(token string) (Key, bool) {
	needle := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(token), "/"))
	if needle == "" {
		return "", false
	}

	targets := make([]string, 0, len(order))
	for _, k := range order {
		targets = append(targets, k.Command())
	}

	ranks := fuzzy.RankFindNormalizedFold(needle, targets)
	if len(ranks) > 0 {
		best := ranks[0]
		for _, r := range ranks[1:] {
			if r.Distance < best.Distance {
				best = r
			}
		}
		return Key(strings.ToUpper(best.Target)), true
	}

	var best Key
	bestDistance := -1
	for _, target := range targets {
		distance := fuzzy.LevenshteinDistance(needle, target)
		if distance > 1 {
			continue
		}
		if bestDistance == -1 || distance < bestDistance {
			bestDistance = distance
			best = Key(strings.ToUpper(target))
		}
	}
	return best, bestDistance != -1
}
