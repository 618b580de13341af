package relgen

import (
	"fmt"
	"strings"
)

// semanticHint classifies a column name into a persona-aware generator by
// substring match, in priority order — the first match wins.
type semanticHint int

const (
	hintNone semanticHint = iota
	hintEmail
	hintFirstName
	hintLastName
	hintFullName
	hintPhone
	hintStreetAddress
	hintCity
	hintRegion
	hintPostcode
	hintCompany
	hintDescription
	hintURL
	hintUsername
	hintPassword
)

var hintBySubstring = []struct {
	substr string
	hint   semanticHint
}{
	{"email", hintEmail},
	{"first_name", hintFirstName},
	{"firstname", hintFirstName},
	{"last_name", hintLastName},
	{"lastname", hintLastName},
	{"surname", hintLastName},
	{"full_name", hintFullName},
	{"fullname", hintFullName},
	{"phone", hintPhone},
	{"mobile", hintPhone},
	{"street", hintStreetAddress},
	{"address", hintStreetAddress},
	{"city", hintCity},
	{"town", hintCity},
	{"region", hintRegion},
	{"state", hintRegion},
	{"province", hintRegion},
	{"postcode", hintPostcode},
	{"zip", hintPostcode},
	{"company", hintCompany},
	{"organization", hintCompany},
	{"employer", hintCompany},
	{"description", hintDescription},
	{"bio", hintDescription},
	{"notes", hintDescription},
	{"url", hintURL},
	{"website", hintURL},
	{"link", hintURL},
	{"username", hintUsername},
	{"login", hintUsername},
	{"handle", hintUsername},
	{"password", hintPassword},
	{"secret", hintPassword},
	// "name" on its own is deliberately last: more specific hints like
	// first_name/company would otherwise never be reached.
	{"name", hintFullName},
}

func classifyColumnName(name string) semanticHint {
	lower := strings.ToLower(name)
	for _, entry := range hintBySubstring {
		if strings.Contains(lower, entry.substr) {
			return entry.hint
		}
	}
	return hintNone
}

// synthesizeSemantic produces a value for a recognized semantic hint, or
// returns ok=false if the column name matched nothing so the caller can
// fall through to typed dispatch.
func (s *Synthesizer) synthesizeSemantic(hint semanticHint, rng *RNG) (any, bool) {
	ld := s.locale
	switch hint {
	case hintEmail:
		first := ld.firstNames[rng.Intn(len(ld.firstNames))]
		last := ld.lastNames[rng.Intn(len(ld.lastNames))]
		domain := ld.emailDomains[rng.Intn(len(ld.emailDomains))]
		return fmt.Sprintf("%s.%s%d@%s", strings.ToLower(first), strings.ToLower(last), rng.Intn(1000), domain), true
	case hintFirstName:
		return ld.firstNames[rng.Intn(len(ld.firstNames))], true
	case hintLastName:
		return ld.lastNames[rng.Intn(len(ld.lastNames))], true
	case hintFullName:
		first := ld.firstNames[rng.Intn(len(ld.firstNames))]
		last := ld.lastNames[rng.Intn(len(ld.lastNames))]
		return ld.titleCaser().String(first + " " + last), true
	case hintPhone:
		out, err := ExpandPattern(ld.phoneFmt, rng)
		if err != nil {
			return nil, false
		}
		return out, true
	case hintStreetAddress:
		num := 1 + rng.Intn(9999)
		street := ld.streetNames[rng.Intn(len(ld.streetNames))]
		return fmt.Sprintf("%d %s", num, street), true
	case hintCity:
		return ld.cities[rng.Intn(len(ld.cities))], true
	case hintRegion:
		return ld.regions[rng.Intn(len(ld.regions))], true
	case hintPostcode:
		out, err := ExpandPattern(ld.postcodeFmt, rng)
		if err != nil {
			return nil, false
		}
		return out, true
	case hintCompany:
		last := ld.lastNames[rng.Intn(len(ld.lastNames))]
		suffix := ld.companySuffix[rng.Intn(len(ld.companySuffix))]
		return fmt.Sprintf("%s %s", last, suffix), true
	case hintDescription:
		return fmt.Sprintf("Autogenerated record %d for testing purposes.", rng.Intn(1_000_000)), true
	case hintURL:
		slug, err := ExpandPattern("[item,resource,entry]-{d:6}", rng)
		if err != nil {
			return nil, false
		}
		return "https://example.test/" + slug, true
	case hintUsername:
		out, err := ExpandPattern("[user]_{d:6}", rng)
		if err != nil {
			return nil, false
		}
		return out, true
	case hintPassword:
		out, err := ExpandPattern("AAAAAAAAAAAA{d:4}", rng)
		if err != nil {
			return nil, false
		}
		return out, true
	default:
		return nil, false
	}
}
