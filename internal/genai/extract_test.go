package genai

import "testing"

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantFound  bool
		wantParsed bool
	}{
		{
			name:       "bare object",
			text:       `{"fitScore": 85}`,
			wantFound:  true,
			wantParsed: true,
		},
		{
			name:       "object wrapped in prose",
			text:       "Here is my analysis:\n\n{\"fitScore\": 72, \"summary\": \"good\"}\n\nLet me know.",
			wantFound:  true,
			wantParsed: true,
		},
		{
			name:       "object in markdown fence",
			text:       "```json\n{\"fitScore\": 60}\n```",
			wantFound:  true,
			wantParsed: true,
		},
		{
			name:       "no braces at all",
			text:       "I could not produce an analysis for this posting.",
			wantFound:  false,
			wantParsed: false,
		},
		{
			name:       "braces but not valid JSON",
			text:       "{this is not json}",
			wantFound:  true,
			wantParsed: false,
		},
		{
			name:       "empty input",
			text:       "",
			wantFound:  false,
			wantParsed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractJSON(tt.text)
			if got.Found != tt.wantFound {
				t.Errorf("Found = %v, want %v", got.Found, tt.wantFound)
			}
			if got.Parsed != tt.wantParsed {
				t.Errorf("Parsed = %v, want %v", got.Parsed, tt.wantParsed)
			}
			if tt.wantParsed && got.Object == nil {
				t.Error("Parsed result has nil Object")
			}
		})
	}
}

func TestExtractJSONGreedySpan(t *testing.T) {
	// The span runs from the first { to the last }, so nested objects
	// survive intact.
	got := ExtractJSON(`prefix {"outer": {"inner": 1}} suffix`)
	if !got.Parsed {
		t.Fatalf("expected parse, got %+v", got)
	}
	if _, ok := got.Object["outer"]; !ok {
		t.Error("nested object was not captured")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"short stays", "hello", 10, "hello"},
		{"exact stays", "hello", 5, "hello"},
		{"long cut", "hello world", 5, "hello..."},
		{"whitespace trimmed", "  hi  ", 10, "hi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.in, tt.n); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
			}
		})
	}
}
