package projection

import "strings"

// roleKeywords marks a token as a named role rather than an instrument.
// Anything a person does to a recording ("Mixed By", "Written-By",
// "Producer") contains one of these; anything they play does not.
var roleKeywords = []string{
	"by",
	"producer",
	"engineer",
	"mastered",
	"mixed",
	"recorded",
	"written",
	"composed",
	"arranged",
	"featuring",
	"performer",
	"conductor",
	"leader",
	"edited",
	"overdubbed",
}

// SplitRoles partitions role tokens into named roles and instruments
// using a case-insensitive keyword match. The heuristic misfiles the
// odd instrument whose name embeds a keyword, which matches how the
// collection has always been categorized.
func SplitRoles(roles []string) (pure []string, instruments []string) {
	for _, role := range roles {
		token := strings.TrimSpace(role)
		if token == "" {
			continue
		}
		if isRoleKeyword(token) {
			pure = append(pure, token)
		} else {
			instruments = append(instruments, token)
		}
	}
	return pure, instruments
}

func isRoleKeyword(token string) bool {
	lowered := strings.ToLower(token)
	for _, keyword := range roleKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
