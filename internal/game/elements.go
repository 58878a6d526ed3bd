package game

import "strings"

// Element is one of the five Ngũ Hành elements. Every species carries exactly
// one element and it never changes during a battle.
type Element string

const (
	ElementMetal Element = "kim"
	ElementWood  Element = "moc"
	ElementWater Element = "thuy"
	ElementFire  Element = "hoa"
	ElementEarth Element = "tho"
)

// Elements lists the five valid elements in canonical order.
var Elements = []Element{ElementMetal, ElementWood, ElementWater, ElementFire, ElementEarth}

// ParseElement normalizes a config/API string into an Element.
func ParseElement(s string) (Element, bool) {
	e := Element(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Elements {
		if e == known {
			return e, true
		}
	}
	return "", false
}

func (e Element) Valid() bool {
	_, ok := ParseElement(string(e))
	return ok
}
