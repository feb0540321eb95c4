package textutil

import "testing"

func TestHTMLToText(t *testing.T) {
	html := `<div><p>About the role</p><ul><li>Go</li><li>3-5 years of exp</li></ul>` +
		`<script>var x = 1;</script>Line<br>break</div>`

	got, err := HTMLToText(html)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expect := "About the role\nGo\n3-5 years of exp\n\nLine\nbreak"
	if Normalize(got) != Normalize(expect) {
		t.Fatalf("unexpected text: %q", got)
	}

	empty, err := HTMLToText("   ")
	if err != nil || empty != "" {
		t.Fatalf("expected empty text without error, got %q, %v", empty, err)
	}
}
