package web

import "embed"

// TemplatesFS contém os templates HTML renderizados pelo servidor
//
//go:embed templates/*.html
var TemplatesFS embed.FS
