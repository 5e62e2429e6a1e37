package generation

import (
	"bytes"
	"math/rand/v2"
	"text/template"

	"github.com/phrazzld/ideaflow-api/internal/domain"
)

// TitleTemplates is the catalog of title formats the prompt builder draws from
// when a request does not carry its own title template.
var TitleTemplates = []string{
	"[Número] Herramientas de IA para [Acción] en [Tema]",
	"Top [Número] Secretos sobre [Tema] que Nadie te Cuenta",
	"Cómo [Acción] con [Herramienta] en [Tiempo]",
	"[Número] Errores que Debes Evitar en [Tema]",
	"Así Logré [Resultado] en [Tiempo] con [Tema]",
	"La Guía Definitiva de [Tema] para [Año]",
	"[Herramienta] vs [Herramienta]: ¿Cuál es Mejor para [Tema]?",
	"Probé [Número] Trucos de [Tema] y Esto Pasó",
	"Deja de [Acción] Así: [Número] Consejos de [Tema]",
	"De Cero a [Resultado]: Mi Estrategia de [Tema]",
}

// SystemInstruction is sent alongside every prompt. It pins the model's role
// and the answer format.
const SystemInstruction = "Eres un estratega de contenido para YouTube experto en crear ideas " +
	"virales y bien estructuradas. Respondes únicamente con un objeto JSON válido, " +
	"sin texto adicional ni bloques de código."

const promptText = `Genera una idea de video para YouTube con las siguientes características:

- Categoría: {{.Request.Category}}
- Subcategoría: {{.Request.Subcategory}}
- Enfoque del video: {{.Request.VideoFocus}}
- Duración del video: {{.Request.VideoLength}}
- Estilo de plantilla: {{.Request.TemplateStyle}}
- Tono del contenido: {{.Request.ContentTone}}

Usa este formato de título como guía de estilo, reemplazando los marcadores entre corchetes: "{{.TitleTemplate}}"

Devuelve un objeto JSON con exactamente estos campos:
1. "title": título atractivo de 6 a 10 palabras que siga el formato indicado; puedes usar MAYÚSCULAS para enfatizar.
2. "outline": arreglo de 7 a 12 elementos. {{.OutlineInstruction}}{{if .TimingDetail}} Empieza cada elemento con una marca de tiempo aproximada en formato mm:ss acorde a la duración del video.{{end}}
3. "midVideoMention": 1 o 2 oraciones para mencionar una herramienta o patrocinador a mitad del video.
4. "endVideoMention": 1 o 2 oraciones para mencionar una herramienta o patrocinador al final del video.
5. "thumbnailIdea": descripción de la miniatura ideal para el video.
6. "interactionQuestion": una sola pregunta para que los espectadores comenten.
7. "category": "{{.Request.Category}}"
8. "subcategory": "{{.Request.Subcategory}}"
9. "videoLength": "{{.Request.VideoLength}}"
`

var promptTemplate = template.Must(template.New("idea").Parse(promptText))

var outlineInstructions = map[domain.ContentType]string{
	domain.ContentTypeIdea:       "Cada elemento describe en una línea un segmento del video.",
	domain.ContentTypeKeypoints:  "Cada elemento es un punto clave del video seguido de un dato o ejemplo que lo respalde.",
	domain.ContentTypeFullScript: "Cada elemento es un párrafo del guion completo de ese segmento, listo para leerse frente a cámara.",
}

type promptData struct {
	Request            domain.GenerationRequest
	TitleTemplate      string
	OutlineInstruction string
	TimingDetail       bool
}

// PromptBuilder renders generation requests into prompts. The zero value is
// not usable; create one with NewPromptBuilder.
type PromptBuilder struct {
	intn func(n int) int
}

// PromptOption configures a PromptBuilder.
type PromptOption func(*PromptBuilder)

// WithRandom sets the source used to pick a catalog title template. intn must
// return a value in [0, n).
func WithRandom(intn func(n int) int) PromptOption {
	return func(b *PromptBuilder) {
		if intn != nil {
			b.intn = intn
		}
	}
}

// NewPromptBuilder creates a PromptBuilder that draws title templates with
// math/rand/v2 unless WithRandom is given.
func NewPromptBuilder(opts ...PromptOption) *PromptBuilder {
	b := &PromptBuilder{intn: rand.IntN}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build returns the prompt for req and the title template it embeds.
// Required fields are not checked; empty values are rendered as they are.
func (b *PromptBuilder) Build(req domain.GenerationRequest) (string, string) {
	titleTemplate := b.TitleTemplate(req)

	data := promptData{
		Request:            req,
		TitleTemplate:      titleTemplate,
		OutlineInstruction: outlineInstructions[req.ContentType.OrDefault()],
		TimingDetail:       req.TimingDetail,
	}
	if data.OutlineInstruction == "" {
		data.OutlineInstruction = outlineInstructions[domain.ContentTypeIdea]
	}

	var buf bytes.Buffer
	// The template is parsed at init and only reads plain string fields, so
	// execution cannot fail.
	_ = promptTemplate.Execute(&buf, data)
	return buf.String(), titleTemplate
}

// TitleTemplate returns the request's title template, or a catalog entry when
// the request has none.
func (b *PromptBuilder) TitleTemplate(req domain.GenerationRequest) string {
	if req.TitleTemplate != "" {
		return req.TitleTemplate
	}
	return TitleTemplates[b.intn(len(TitleTemplates))]
}
