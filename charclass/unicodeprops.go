package charclass

import "unicode"

// UnicodePropertyError reports that a `\p{name=value}` or `\p{name}`
// expression does not resolve through the fixed property table (backed
// by the standard library's unicode range tables).
type UnicodePropertyError struct {
	Name, Value string
}

func (e *UnicodePropertyError) Error() string {
	if e.Value != "" {
		return "unknown Unicode property " + e.Name + "=" + e.Value
	}
	return "unknown Unicode property " + e.Name
}

// basicEmoji is a small representative slice of the Basic_Emoji property's
// string-valued members (full emoji sequence data is far too large to
// enumerate here); it exists so `\p{Basic_Emoji}` exercises the
// may-contain-strings path rather than being silently unsupported.
var basicEmoji = [][]rune{
	{0x263A, 0xFE0F}, // ☺️
	{0x2764, 0xFE0F}, // ❤️
	{0x1F600},        // 😀
	{0x1F44D},        // 👍
}

// binaryProperties maps a General_Category / binary property name to
// a stdlib *unicode.RangeTable. These names are exactly the ones
// ECMAScript's UnicodePropertyValueAliases enumerate for General_Category
// and a handful of binary properties; the table is static and frozen.
var binaryProperties = map[string]*unicode.RangeTable{
	"Alphabetic":            unicode.Letter,
	"Letter":                unicode.Letter,
	"L":                     unicode.Letter,
	"Uppercase":              unicode.Upper,
	"Uppercase_Letter":       unicode.Lu,
	"Lu":                     unicode.Lu,
	"Lowercase":              unicode.Lower,
	"Lowercase_Letter":       unicode.Ll,
	"Ll":                     unicode.Ll,
	"Titlecase_Letter":       unicode.Lt,
	"Lt":                     unicode.Lt,
	"Modifier_Letter":        unicode.Lm,
	"Lm":                     unicode.Lm,
	"Other_Letter":           unicode.Lo,
	"Lo":                     unicode.Lo,
	"Mark":                   unicode.Mark,
	"M":                      unicode.Mark,
	"Nonspacing_Mark":        unicode.Mn,
	"Mn":                     unicode.Mn,
	"Spacing_Mark":           unicode.Mc,
	"Mc":                     unicode.Mc,
	"Enclosing_Mark":         unicode.Me,
	"Me":                     unicode.Me,
	"Number":                 unicode.Number,
	"N":                      unicode.Number,
	"Decimal_Number":         unicode.Nd,
	"Nd":                     unicode.Nd,
	"Letter_Number":          unicode.Nl,
	"Nl":                     unicode.Nl,
	"Other_Number":           unicode.No,
	"No":                     unicode.No,
	"Punctuation":            unicode.Punct,
	"P":                      unicode.Punct,
	"Symbol":                 unicode.Symbol,
	"S":                      unicode.Symbol,
	"Math_Symbol":            unicode.Sm,
	"Sm":                     unicode.Sm,
	"Currency_Symbol":        unicode.Sc,
	"Sc":                     unicode.Sc,
	"Modifier_Symbol":        unicode.Sk,
	"Sk":                     unicode.Sk,
	"Other_Symbol":           unicode.So,
	"So":                     unicode.So,
	"Separator":              unicode.Space,
	"Z":                      unicode.Space,
	"Space_Separator":        unicode.Zs,
	"Zs":                     unicode.Zs,
	"White_Space":            unicode.White_Space,
	"Control":                unicode.Cc,
	"Cc":                     unicode.Cc,
	"C":                      unicode.C,
	"Format":                 unicode.Cf,
	"Cf":                     unicode.Cf,
	"Private_Use":            unicode.Co,
	"Co":                     unicode.Co,
	"Unassigned":             unicode.Cn,
	"Cn":                     unicode.Cn,
	"ASCII":                  &unicode.RangeTable{R16: []unicode.Range16{{Lo: 0, Hi: 0x7F, Stride: 1}}, LatinOffset: 1},
	"ASCII_Hex_Digit":        unicode.ASCII_Hex_Digit,
	"Emoji":                  unicode.So,
	"ID_Start":               unicode.L,
	"ID_Continue":            rangeTableUnion(unicode.L, unicode.Nd, unicode.Pc),
}

// scriptProperties maps `Script=Value` / `Script_Extensions=Value` names.
var scriptProperties = map[string]*unicode.RangeTable{
	"Latin":      unicode.Latin,
	"Greek":      unicode.Greek,
	"Cyrillic":   unicode.Cyrillic,
	"Han":        unicode.Han,
	"Hiragana":   unicode.Hiragana,
	"Katakana":   unicode.Katakana,
	"Hangul":     unicode.Hangul,
	"Arabic":     unicode.Arabic,
	"Hebrew":     unicode.Hebrew,
	"Armenian":   unicode.Armenian,
	"Georgian":   unicode.Georgian,
	"Thai":       unicode.Thai,
	"Devanagari": unicode.Devanagari,
	"Common":     unicode.Common,
}

func rangeTableUnion(tables ...*unicode.RangeTable) *unicode.RangeTable {
	b := NewBuilder()
	for _, t := range tables {
		addRangeTable(b, t)
	}
	cc := b.Finalize()
	rt := &unicode.RangeTable{}
	for _, r := range cc.Ranges {
		rt.R16 = append(rt.R16, unicode.Range16{Lo: uint16(r.Lo), Hi: uint16(r.Hi), Stride: 1})
	}
	for _, r := range cc.RangesUnicode {
		rt.R32 = append(rt.R32, unicode.Range32{Lo: uint32(r.Lo), Hi: uint32(r.Hi), Stride: 1})
	}
	return rt
}

func addRangeTable(b *Builder, t *unicode.RangeTable) {
	for _, r := range t.R16 {
		for c := rune(r.Lo); c <= rune(r.Hi); c += rune(r.Stride) {
			b.AddCodePoint(c)
			if r.Stride == 0 {
				break
			}
		}
	}
	for _, r := range t.R32 {
		for c := rune(r.Lo); c <= rune(r.Hi); c += rune(r.Stride) {
			b.AddCodePoint(c)
			if r.Stride == 0 {
				break
			}
		}
	}
}

// ResolveUnicodeProperty builds a CharacterClass for `\p{name}` (binary
// property, name with no value) or `\p{name=value}` (script family).
// Requires u or v mode (`\p{...}` is rejected elsewhere); callers
// enforce that before calling this.
func ResolveUnicodeProperty(name, value string) (*CharacterClass, error) {
	if name == "Basic_Emoji" {
		b := NewBuilder()
		for _, seq := range basicEmoji {
			b.AddString(seq)
		}
		return b.Finalize(), nil
	}

	var table *unicode.RangeTable
	switch {
	case value != "" && (name == "Script" || name == "Script_Extensions" || name == "sc" || name == "scx"):
		table = scriptProperties[value]
	case value != "" && (name == "General_Category" || name == "gc"):
		table = binaryProperties[value]
	case value == "":
		table = binaryProperties[name]
		if table == nil {
			table = scriptProperties[name]
		}
	}

	if table == nil {
		return nil, &UnicodePropertyError{Name: name, Value: value}
	}

	b := NewBuilder()
	addRangeTable(b, table)
	return b.Finalize(), nil
}
