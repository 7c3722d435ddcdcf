package emoji

import (
	"encoding/json"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/forPelevin/gomoji"
	"github.com/pkg/errors"
)

const skinTone = "skin tone"

// versionPrefix matches the "E13.0 " emoji version prefix on Unicode names.
var versionPrefix = regexp.MustCompile(`^E\d+(\.\d+)?\s+`)

// Load builds the default table from the gomoji data set. Skin tone
// qualified emoji are folded into their base entry as variants.
func Load() *Table {
	return fromGomoji(gomoji.AllEmojis())
}

func fromGomoji(all []gomoji.Emoji) *Table {
	bases := make([]gomoji.Emoji, 0, len(all))
	variants := make(map[string][]Variant)
	for _, e := range all {
		name := unicodeName(e.UnicodeName)
		if base, _, ok := strings.Cut(name, ":"); ok && strings.Contains(name, skinTone) {
			variants[strings.TrimSpace(base)] = append(variants[strings.TrimSpace(base)], Variant{
				Hexcode: hexcodeFor(e.CodePoint),
				Glyph:   e.Character,
			})
			continue
		}
		bases = append(bases, e)
	}

	sort.Slice(bases, func(i, j int) bool {
		ri, rj := groupRank(GroupID(bases[i].Group)), groupRank(GroupID(bases[j].Group))
		if ri != rj {
			return ri < rj
		}
		return codePointLess(bases[i].CodePoint, bases[j].CodePoint)
	})

	entries := make([]Entry, 0, len(bases))
	for i, e := range bases {
		name := unicodeName(e.UnicodeName)
		skins := variants[name]
		sort.Slice(skins, func(a, b int) bool {
			return skins[a].Hexcode < skins[b].Hexcode
		})
		entries = append(entries, Entry{
			Hexcode:   hexcodeFor(e.CodePoint),
			Glyph:     e.Character,
			Name:      name,
			Tags:      tagsFor(name, e.Slug),
			Group:     GroupID(e.Group),
			SubGroup:  e.SubGroup,
			Order:     i,
			Skintones: skins,
		})
	}
	return NewTable(entries)
}

// LoadFile reads a JSON table. Entries without an order keep file order.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "emoji: read table %s", path)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.Wrapf(err, "emoji: decode table %s", path)
	}
	for i := range entries {
		if entries[i].Order == 0 {
			entries[i].Order = i
		}
		entries[i].Hexcode = normalizeHex(entries[i].Hexcode)
		entries[i].Group = GroupID(entries[i].Group)
		for j := range entries[i].Skintones {
			entries[i].Skintones[j].Hexcode = normalizeHex(entries[i].Skintones[j].Hexcode)
		}
	}
	return NewTable(entries), nil
}

func unicodeName(s string) string {
	return strings.TrimSpace(versionPrefix.ReplaceAllString(s, ""))
}

func hexcodeFor(codePoint string) string {
	return strings.Join(strings.Fields(strings.ToUpper(codePoint)), "-")
}

func codePointLess(a, b string) bool {
	af, bf := strings.Fields(a), strings.Fields(b)
	for i := 0; i < len(af) && i < len(bf); i++ {
		if len(af[i]) != len(bf[i]) {
			return len(af[i]) < len(bf[i])
		}
		if af[i] != bf[i] {
			return af[i] < bf[i]
		}
	}
	return len(af) < len(bf)
}

// tagsFor splits the name into words and adds the slug, deduplicated.
func tagsFor(name, slug string) []string {
	seen := make(map[string]bool)
	var tags []string
	add := func(t string) {
		t = strings.ToLower(strings.Trim(t, " :,.()“”\"'"))
		if t == "" || seen[t] {
			return
		}
		seen[t] = true
		tags = append(tags, t)
	}
	for _, w := range strings.Fields(name) {
		add(w)
	}
	add(slug)
	return tags
}
