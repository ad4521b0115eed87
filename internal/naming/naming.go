// Package naming converts between Go identifiers and column names.
package naming

import (
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
)

var (
	rules    = inflect.NewDefaultRuleset()
	acronyms = map[string]bool{
		"ACL": true, "API": true, "ASCII": true, "CPU": true, "CSS": true, "DNS": true,
		"EOF": true, "GUID": true, "HTML": true, "HTTP": true, "HTTPS": true, "ID": true,
		"IP": true, "JSON": true, "LHS": true, "QPS": true, "RAM": true, "RHS": true,
		"RPC": true, "SLA": true, "SMTP": true, "SQL": true, "SSH": true, "TCP": true,
		"TLS": true, "TTL": true, "UDP": true, "UI": true, "UID": true, "UUID": true,
		"URI": true, "URL": true, "UTF8": true, "VM": true, "XML": true, "XMPP": true,
		"XSRF": true, "XSS": true,
	}
)

// AddAcronym adds a word that Pascal renders in upper case.
func AddAcronym(word string) {
	acronyms[strings.ToUpper(word)] = true
}

// Snake converts a Go identifier to snake_case, keeping acronyms together:
//
//	Username => username
//	FullName => full_name
//	HTTPCode => http_code
//	UserIDs  => user_ids
func Snake(s string) string {
	var (
		j int
		b strings.Builder
	)
	for i := 0; i < len(s); i++ {
		r := rune(s[i])
		// Put '_' if it is not a start or end of a word, current letter is
		// uppercase, and previous is lowercase (cases like "UserInfo"), or next
		// letter is lowercase and previous letter is not "_".
		if i > 0 && i < len(s)-1 && unicode.IsUpper(r) {
			if unicode.IsLower(rune(s[i-1])) ||
				j != i-1 && unicode.IsLower(rune(s[i+1])) && unicode.IsLetter(rune(s[i-1])) {
				j = i
				b.WriteString("_")
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Pascal converts a snake_case or kebab-case name to a Go identifier:
//
//	user_info => UserInfo
//	user_id   => UserID
//	api_url   => APIURL
func Pascal(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '.'
	})
	for i, w := range words {
		upper := strings.ToUpper(w)
		if acronyms[upper] {
			words[i] = upper
			continue
		}
		words[i] = rules.Capitalize(w)
	}
	return strings.Join(words, "")
}

// Singular returns the singular form of a table-like name: "users" => "user".
func Singular(s string) string {
	return rules.Singularize(s)
}

// Plural returns the plural form of a name: "user" => "users".
func Plural(s string) string {
	return rules.Pluralize(s)
}
