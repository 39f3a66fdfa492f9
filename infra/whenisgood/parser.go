package whenisgood

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/groovebot/groover/core/model"
)

// ParseResults extracts respondents and their free slots from a whenisgood
// results page. The page embeds respondent data in its final script element
// as lines of the form `r.name = "..."` and `r.myCanDos = "..."`, where
// myCanDos is a comma-separated list of epoch-millisecond slot starts.
func ParseResults(r io.Reader) ([]model.Participant, map[string][]time.Time, error) {
	script, err := lastScript(r)
	if err != nil {
		return nil, nil, err
	}

	var participants []model.Participant
	free := make(map[string][]time.Time)
	current := ""

	sc := bufio.NewScanner(strings.NewReader(script))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(line, "r") {
			continue
		}
		switch {
		case strings.Contains(line, ".name = "):
			name, ok := quoted(line)
			if !ok {
				return nil, nil, fmt.Errorf("malformed respondent name line: %q", line)
			}
			current = name
			participants = append(participants, model.Participant{Name: name})
			if _, seen := free[name]; !seen {
				free[name] = nil
			}
		case strings.Contains(line, ".myCanDos = "):
			if current == "" {
				return nil, nil, fmt.Errorf("availability line before any respondent name")
			}
			raw, ok := quoted(line)
			if !ok {
				return nil, nil, fmt.Errorf("malformed availability line: %q", line)
			}
			if raw == "" {
				continue
			}
			for _, field := range strings.Split(raw, ",") {
				millis, err := strconv.ParseInt(strings.TrimSpace(field), 10, 64)
				if err != nil {
					return nil, nil, fmt.Errorf("parse slot %q for %s: %w", field, current, err)
				}
				free[current] = append(free[current], time.Unix(millis/1000, 0).UTC())
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("scan results script: %w", err)
	}
	if len(participants) == 0 {
		return nil, nil, fmt.Errorf("no respondents found in results page")
	}
	return participants, free, nil
}

// lastScript returns the text of the final script element in the document.
func lastScript(r io.Reader) (string, error) {
	z := html.NewTokenizer(r)
	var last string
	var found bool
	var inScript bool
	var buf strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				if !found {
					return "", fmt.Errorf("no script element found in results page")
				}
				return last, nil
			}
			return "", fmt.Errorf("tokenize results page: %w", z.Err())
		case html.StartTagToken:
			name, _ := z.TagName()
			if string(name) == "script" {
				inScript = true
				buf.Reset()
			}
		case html.TextToken:
			if inScript {
				buf.Write(z.Text())
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) == "script" {
				inScript = false
				last = buf.String()
				found = true
			}
		}
	}
}

// quoted returns the first double-quoted substring of s.
func quoted(s string) (string, bool) {
	i := strings.Index(s, `"`)
	if i < 0 {
		return "", false
	}
	j := strings.Index(s[i+1:], `"`)
	if j < 0 {
		return "", false
	}
	return s[i+1 : i+1+j], true
}
