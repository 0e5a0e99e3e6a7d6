package templates

import (
	"context"

	"github.com/a-h/templ"
)

// Layout wraps body in the full HTML page with HTMX and the toast listener.
func Layout(title string, body templ.Component) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw("<!DOCTYPE html>")
		h.open("html", "lang", "en")
		h.raw("<head><meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">")
		h.elem("title", title+" | Quotation Builder")
		h.raw(`<script src="https://unpkg.com/htmx.org@2.0.4"></script>`)
		h.raw(`<link rel="stylesheet" href="/static/app.css">`)
		h.raw("</head>")
		h.open("body", "hx-boost", "true")
		h.raw("<nav>")
		h.elem("a", "Quotations", "href", "/quotations")
		h.elem("a", "New Quotation", "href", "/builder")
		h.raw("</nav><main>")
		h.render(ctx, body)
		h.raw(`</main><div id="toast" class="toast"></div>`)
		h.raw(`<script src="/static/app.js"></script>`)
		h.raw("</body></html>")
	})
}
