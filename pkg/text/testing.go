package text

import "strings"

// UnescapeTestContent supports content using a special character instead of backticks.
func UnescapeTestContent(content string) string {
	// Multiline strings in Golang cannot contain backticks but card fields
	// often contain inline code. We allow the ” character instead as
	// suggested here: https://stackoverflow.com/a/59900008
	//
	// Example: ”fmt.Println” will become `fmt.Println`
	result := strings.ReplaceAll(content, "”", "`")

	// We allow the ‛ character too
	result = strings.ReplaceAll(result, "‛", "`")

	return result
}
