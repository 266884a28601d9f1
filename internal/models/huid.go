package models

// HUIDLength is the number of characters in a DDMMYYYY-HHMMSS token.
const HUIDLength = 15

// HUID is a folder-name timestamp token shaped DDMMYYYY-HHMMSS.
type HUID string

// huidPattern holds the accepted byte range for every position of a HUID.
// Ranges are coarse: day 39 or month 19 pass.
var huidPattern = [HUIDLength][2]byte{
	{'0', '3'}, {'0', '9'}, // day
	{'0', '1'}, {'0', '9'}, // month
	{'0', '2'}, {'0', '9'}, {'0', '9'}, {'0', '9'}, // year
	{'-', '-'},
	{'0', '2'}, {'0', '9'}, // hour
	{'0', '5'}, {'0', '9'}, // minute
	{'0', '5'}, {'0', '9'}, // second
}

// ParseHUID validates the first HUIDLength characters of name. On success the
// returned HUID is name[:HUIDLength]; anything after it is not inspected.
func ParseHUID(name string) (HUID, bool) {
	if len(name) < HUIDLength {
		return "", false
	}
	for i, bounds := range huidPattern {
		if name[i] < bounds[0] || name[i] > bounds[1] {
			return "", false
		}
	}
	return HUID(name[:HUIDLength]), true
}

// Suffix returns the part of name following the HUID, or "" when name is the
// bare token.
func (h HUID) Suffix(name string) string {
	if len(name) <= len(h) {
		return ""
	}
	return name[len(h):]
}

func (h HUID) String() string {
	return string(h)
}
