package digest

import (
	"fmt"
	"html/template"
	"strings"
)

// digestTemplate mirrors the mail layout readers already know: one
// container, a header, then a block per item with title, url and
// summary. html/template escapes titles and summaries on the way in.
const digestTemplate = `<html>
<head>
    <meta charset="UTF-8">
    <title>News Digest</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 0;
            padding: 20px;
            background-color: #f9f9f9;
        }
        .container {
            max-width: 600px;
            margin: auto;
            background: white;
            padding: 20px;
            box-shadow: 0 0 10px rgba(0, 0, 0, 0.1);
        }
        h2 {
            color: #333;
            border-bottom: 1px solid #d3d3d3;
            padding-bottom: 10px;
        }
        .digest-date {
            color: #666;
            font-size: 14px;
            margin-bottom: 20px;
        }
        .news-item {
            margin-bottom: 15px;
        }
        .news-title a {
            color: #000;
            text-decoration: none;
            font-weight: bold;
            font-size: 16px
        }
        .news-url {
            color: #666;
            margin-top: 5px;
            font-size: 14px;
        }
        .news-summary {
            color: #333;
            margin-top: 5px;
            font-size: 16px
        }
    </style>
</head>
<body>
    <div class="container">
        <h2>News Digest ({{.ItemCount}} items)</h2>
        <div class="digest-date">{{.DateString}}</div>
{{- range .Sections}}
        <h2>{{.Title}}</h2>
{{- range .Items}}
        <div class="news-item">
            <div class="news-title">
                <a href="{{.URL}}" target="_blank">{{.Title}}</a>
            </div>
            <div class="news-url">{{.URL}}</div>
{{- if .Summary}}
            <div class="news-summary">{{.Summary}}</div>
{{- end}}
        </div>
{{- end}}
{{- end}}
    </div>
</body>
</html>
`

var htmlTmpl = template.Must(template.New("digest").Parse(digestTemplate))

// RenderHTML produces the HTML body of the digest email.
func RenderHTML(d *Digest) (string, error) {
	var sb strings.Builder
	if err := htmlTmpl.Execute(&sb, d); err != nil {
		return "", fmt.Errorf("render digest: %w", err)
	}
	return sb.String(), nil
}

// RenderText produces the plain-text alternative for clients that do
// not display HTML.
func RenderText(d *Digest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "News Digest (%d items) - %s\n\n", d.ItemCount(), d.DateString())
	for _, section := range d.Sections {
		sb.WriteString(section.Title + "\n")
		sb.WriteString(strings.Repeat("-", len(section.Title)) + "\n")
		for _, item := range section.Items {
			sb.WriteString(item.Title + "\n")
			sb.WriteString(item.URL + "\n")
			if item.Summary != "" {
				sb.WriteString(item.Summary + "\n")
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
