package columns

import "regexp"

// Role is a semantic tag assigned to a column from its name and kind.
type Role string

const (
	RolePII            Role = "pii"
	RoleSatisfaction   Role = "satisfaction"
	RoleRecommendation Role = "recommendation"
	RoleText           Role = "text"
)

var (
	piiPattern       = regexp.MustCompile(`(?i)email|e-mail|mail|name|phone|mobile|contact|roll|address|reg(istration)?|id$|^id`)
	likertPattern    = regexp.MustCompile(`(?i)satisf|rat(e|ing)|overall|experience|quality|usability|value`)
	recommendPattern = regexp.MustCompile(`(?i)recommend|nps|likelihood`)
	openTextPattern  = regexp.MustCompile(`(?i)comment|feedback|suggest|why|describe|text|other`)
)

// RoleSet is the set of roles a single column carries. Roles are independent:
// a column may be PII and satisfaction-like at the same time.
type RoleSet map[Role]bool

// Has reports whether r is in the set.
func (s RoleSet) Has(r Role) bool { return s[r] }

// IsPII reports whether the header looks personally identifying.
func IsPII(name string) bool { return piiPattern.MatchString(name) }

// RolesFor maps a header and its kind to role tags. Matching is substring based,
// so "Overall value for money" and "Moderate" both hit the satisfaction pattern.
func RolesFor(name string, kind Kind) RoleSet {
	set := RoleSet{}
	if IsPII(name) {
		set[RolePII] = true
	}
	switch kind {
	case KindNumeric:
		if likertPattern.MatchString(name) {
			set[RoleSatisfaction] = true
		}
		if recommendPattern.MatchString(name) {
			set[RoleRecommendation] = true
		}
	case KindText:
		if openTextPattern.MatchString(name) {
			set[RoleText] = true
		}
	}
	return set
}

// Roles holds the role lists derived from a schema. Each list follows the
// order of the input columns.
type Roles struct {
	PII            []string
	Satisfaction   []string
	Recommendation []string
	Text           []string
}

// Classify assigns roles to every column of the schema.
func Classify(cols []Column) Roles {
	var r Roles
	for _, c := range cols {
		set := RolesFor(c.Name, c.Kind)
		if set.Has(RolePII) {
			r.PII = append(r.PII, c.Name)
		}
		if set.Has(RoleSatisfaction) {
			r.Satisfaction = append(r.Satisfaction, c.Name)
		}
		if set.Has(RoleRecommendation) {
			r.Recommendation = append(r.Recommendation, c.Name)
		}
		if set.Has(RoleText) {
			r.Text = append(r.Text, c.Name)
		}
	}
	return r
}
