package htmlsanitize_test

import (
	"html/template"
	"strings"
	"testing"

	"github.com/dalemusser/tujitume/internal/app/system/htmlsanitize"
)

func TestSanitize_Empty(t *testing.T) {
	if result := htmlsanitize.Sanitize(""); result != "" {
		t.Errorf("expected empty string, got %q", result)
	}
}

func TestSanitize_PlainText(t *testing.T) {
	result := htmlsanitize.Sanitize("Youth skills week")
	if result != "Youth skills week" {
		t.Errorf("expected plain text unchanged, got %q", result)
	}
}

func TestSanitize_Preserved(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"formatting", "<p><strong>Bold</strong> and <em>italic</em></p>"},
		{"unordered list", "<ul><li>Item 1</li><li>Item 2</li></ul>"},
		{"ordered list", "<ol><li>First</li><li>Second</li></ol>"},
		{"blockquote", "<blockquote>A quote</blockquote>"},
		{"headings", "<h1>Heading 1</h1><h2>Heading 2</h2><h3>Heading 3</h3>"},
		{"code", "<pre><code>function test() {}</code></pre>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := htmlsanitize.Sanitize(tt.input); result != tt.input {
				t.Errorf("expected %q preserved, got %q", tt.input, result)
			}
		})
	}
}

func TestSanitize_RemovesScript(t *testing.T) {
	result := htmlsanitize.Sanitize("<p>Hello</p><script>alert('xss')</script>")
	if result != "<p>Hello</p>" {
		t.Errorf("expected script removed, got %q", result)
	}
}

func TestSanitize_Removed(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		banned string
	}{
		{"onclick", `<button onclick="alert('xss')">Click</button>`, "onclick"},
		{"javascript href", `<a href="javascript:alert('xss')">Click</a>`, "javascript:"},
		{"iframe", `<p>Content</p><iframe src="https://evil.com"></iframe>`, "iframe"},
		{"style tag", `<style>body { color: red; }</style><p>Text</p>`, "<style>"},
		{"onerror", `<img src="x" onerror="alert('xss')">`, "onerror"},
		{"data url", `<img src="data:text/html,<script>alert('xss')</script>">`, "data:text/html"},
		{"form", `<form action="/submit"><input type="text" name="data"></form>`, "<input"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := htmlsanitize.Sanitize(tt.input); strings.Contains(result, tt.banned) {
				t.Errorf("expected %q removed, got %q", tt.banned, result)
			}
		})
	}
}

func TestSanitize_AllowsSafeLinksAndImages(t *testing.T) {
	link := htmlsanitize.Sanitize(`<a href="https://tujitume.org">Link</a>`)
	if !strings.Contains(link, "https://tujitume.org") {
		t.Errorf("expected safe link preserved, got %q", link)
	}
	img := htmlsanitize.Sanitize(`<img src="https://example.com/image.png" alt="Image">`)
	if !strings.Contains(img, "src=") || !strings.Contains(img, "alt=") {
		t.Errorf("expected image preserved, got %q", img)
	}
}

func TestSanitize_AllowsTables(t *testing.T) {
	result := htmlsanitize.Sanitize(`<table class="schedule"><tbody><tr><td>Cell</td></tr></tbody></table>`)
	if !strings.Contains(result, "<td>Cell</td>") || !strings.Contains(result, `class="schedule"`) {
		t.Errorf("expected table preserved, got %q", result)
	}
}

func TestSanitize_AllowsBreaks(t *testing.T) {
	result := htmlsanitize.Sanitize("<p>Before</p><hr><p>Line 1<br>Line 2</p>")
	if !strings.Contains(result, "<br") || !strings.Contains(result, "<hr") {
		t.Errorf("expected br and hr preserved, got %q", result)
	}
}

func TestSanitizeToHTML(t *testing.T) {
	if got := htmlsanitize.SanitizeToHTML(""); got != "" {
		t.Errorf("expected empty template.HTML, got %q", got)
	}
	if got := htmlsanitize.SanitizeToHTML("<p>Hello</p><script>alert('xss')</script>"); got != template.HTML("<p>Hello</p>") {
		t.Errorf("expected script removed, got %q", got)
	}
}

func TestStripTags(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"Plain message", "Plain message"},
		{"<b>Hello</b> there", "Hello there"},
		{"Tom & Jerry", "Tom & Jerry"},
		{"5 < 10", "5 < 10"},
		{"Hi<script>alert(1)</script>", "Hi"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := htmlsanitize.StripTags(tt.input); got != tt.want {
				t.Errorf("StripTags(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsPlainText(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"Hello, World!", true},
		{"5 < 10", true},
		{"5 > 3", true},
		{"<p>Hello</p>", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := htmlsanitize.IsPlainText(tt.input); got != tt.want {
				t.Errorf("IsPlainText(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPlainTextToHTML(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"Hello, World!", "<p>Hello, World!</p>"},
		{"Line 1\nLine 2\nLine 3", "<p>Line 1<br>Line 2<br>Line 3</p>"},
		{"A & B", "<p>A &amp; B</p>"},
		{"<script>", "<p>&lt;script&gt;</p>"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := htmlsanitize.PlainTextToHTML(tt.input); got != tt.want {
				t.Errorf("PlainTextToHTML(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPrepareForDisplay(t *testing.T) {
	tests := []struct {
		input string
		want  template.HTML
	}{
		{"", ""},
		{"Hello, World!", "<p>Hello, World!</p>"},
		{"Line 1\nLine 2", "<p>Line 1<br>Line 2</p>"},
		{"<p>Hello</p>", "<p>Hello</p>"},
		{"<p>Hello</p><script>alert('xss')</script>", "<p>Hello</p>"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := htmlsanitize.PrepareForDisplay(tt.input); got != tt.want {
				t.Errorf("PrepareForDisplay(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
