package location

import (
	"fmt"
	"html"
	"strings"
)

// Describe returns the HTML popup text of a record.
// Field values are escaped; the markup around them is fixed per variant.
func Describe(loc Location) string {
	e := html.EscapeString
	c := loc.Coordinates()

	switch l := loc.(type) {
	case TouristSite:
		return fmt.Sprintf("<h4><b>%s</b></h4><i>%s</i><br>%s<br>Koordinat: %s",
			e(l.Name()), e(l.CategoryLabel), e(l.Description), c)
	case CulinarySpot:
		return fmt.Sprintf("%s<br>%s<br><br>Menu Andalan: %s<br><br>Koordinat: %s",
			e(l.Name()), CulinaryCategoryLabel, e(l.MenuHighlight), c)
	case PlaceOfWorship:
		return fmt.Sprintf("%s<br>%s (%s)<br><br>%s<br><br>Koordinat: %s",
			e(l.Name()), WorshipCategoryHeading, e(l.Religion), e(l.Description), c)
	default:
		return ""
	}
}

// DescribePlain returns the same information as Describe as plain text lines.
func DescribePlain(loc Location) string {
	c := loc.Coordinates()
	lines := []string{loc.Name()}

	switch l := loc.(type) {
	case TouristSite:
		lines = append(lines, l.CategoryLabel, l.Description)
	case CulinarySpot:
		lines = append(lines, CulinaryCategoryLabel, "Menu Andalan: "+l.MenuHighlight)
	case PlaceOfWorship:
		lines = append(lines, WorshipCategoryHeading+" ("+l.Religion+")", l.Description)
	}

	return strings.Join(append(lines, "Koordinat: "+c.String()), "\n")
}

// Label returns a short "Name [Kind]" listing label.
func Label(loc Location) string {
	return fmt.Sprintf("%s [%s]", loc.Name(), loc.Kind())
}
