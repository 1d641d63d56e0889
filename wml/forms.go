package wml

import (
	"strconv"

	"github.com/beevik/etree"
)

// CheckBoxText returns the text stand-in for a checkBox form element. The
// state comes from the checked child when present, falling back to default;
// a checked or default element without a val attribute means "1". Unchecked
// renders as an empty ballot box, checked as a crossed one. A checkbox with
// no recognizable state renders as an explicit failure marker so it is
// visible in extracted text rather than silently dropped.
func CheckBoxText(checkBox *etree.Element) string {
	val, ok := checkBoxState(checkBox)
	switch {
	case ok && (val == "0" || val == "false"):
		return "☐"
	case ok && (val == "1" || val == "true"):
		return "☒"
	default:
		return "----checkbox failed----"
	}
}

func checkBoxState(checkBox *etree.Element) (string, bool) {
	if checked := checkBox.SelectElement("checked"); checked != nil {
		if v := checked.SelectAttrValue("val", ""); v != "" {
			return v, true
		}
		return "1", true
	}
	if def := checkBox.SelectElement("default"); def != nil {
		if v := def.SelectAttrValue("val", ""); v != "" {
			return v, true
		}
	}
	return "", false
}

// DropDownText returns the selected entry of a ddList form element. The
// result child holds the selected index into the listEntry values; absent,
// the first entry is selected. An index outside the entry list yields "".
func DropDownText(ddList *etree.Element) string {
	var entries []string
	for _, le := range childElements(ddList, "listEntry") {
		entries = append(entries, le.SelectAttrValue("val", ""))
	}
	idx := 0
	if res := ddList.SelectElement("result"); res != nil {
		if v := res.SelectAttrValue("val", ""); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return ""
			}
			idx = n
		}
	}
	if idx < 0 || idx >= len(entries) {
		return ""
	}
	return entries[idx]
}
