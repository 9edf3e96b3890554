package sqlgen

import (
	"encoding/json"
	"fmt"
	"strings"
)

// modelResponse is the JSON shape the prompt asks the model to reply with.
type modelResponse struct {
	SQL         string `json:"sql"`
	Explanation string `json:"explanation"`
}

// parseModelResponse extracts SQL and an optional explanation from the model
// output. JSON is tried first, then ```sql code blocks, then the raw text if
// it looks like SQL.
func parseModelResponse(response string) (sql, explanation string, err error) {
	response = strings.TrimSpace(response)

	if jsonStr := extractJSON(response); jsonStr != "" {
		var parsed modelResponse
		if err := json.Unmarshal([]byte(jsonStr), &parsed); err == nil && parsed.SQL != "" {
			return cleanSQL(parsed.SQL), parsed.Explanation, nil
		}
	}

	if sql := extractSQLFromCodeBlocks(response); sql != "" {
		return sql, "", nil
	}

	if looksLikeSQL(response) {
		return cleanSQL(response), "", nil
	}

	return "", "", fmt.Errorf("could not extract SQL from model response")
}

// extractSQLFromCodeBlocks finds SQL in markdown code blocks.
func extractSQLFromCodeBlocks(response string) string {
	if start := strings.Index(response, "```sql"); start != -1 {
		start += len("```sql")
		if end := strings.Index(response[start:], "```"); end != -1 {
			return cleanSQL(response[start : start+end])
		}
	}

	if start := strings.Index(response, "```"); start != -1 {
		start += 3
		if end := strings.Index(response[start:], "```"); end != -1 {
			content := strings.TrimSpace(response[start : start+end])
			if looksLikeSQL(content) {
				return cleanSQL(content)
			}
		}
	}

	return ""
}

// looksLikeSQL checks if text appears to be a SQL query.
func looksLikeSQL(text string) bool {
	upper := strings.ToUpper(strings.TrimSpace(text))
	for _, kw := range []string{"SELECT", "WITH"} {
		if strings.HasPrefix(upper, kw) {
			return true
		}
	}
	return false
}

// cleanSQL trims whitespace and a trailing semicolon.
func cleanSQL(sql string) string {
	sql = strings.TrimSpace(sql)
	sql = strings.TrimSuffix(sql, ";")
	return strings.TrimSpace(sql)
}

// extractJSON finds a JSON object in the response: fenced ```json blocks
// first, then the first balanced object in the raw text.
func extractJSON(response string) string {
	response = strings.TrimSpace(response)

	if start := strings.Index(response, "```json"); start != -1 {
		start += len("```json")
		if end := strings.Index(response[start:], "```"); end != -1 {
			return strings.TrimSpace(response[start : start+end])
		}
	}

	if start := strings.Index(response, "```"); start != -1 {
		start += 3
		if end := strings.Index(response[start:], "```"); end != -1 {
			content := strings.TrimSpace(response[start : start+end])
			if strings.HasPrefix(content, "{") {
				return content
			}
		}
	}

	if start := strings.Index(response, "{"); start != -1 {
		return extractJSONObject(response, start)
	}

	return ""
}

// extractJSONObject returns the balanced {...} starting at start, respecting
// string literals and escapes.
func extractJSONObject(s string, start int) string {
	if start >= len(s) || s[start] != '{' {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[start : i+1]
				}
			}
		}
	}

	return ""
}
