package generation

import (
	"strings"

	"github.com/phrazzld/ideaflow-api/internal/domain"
)

// DefaultTitleTemplate is used by Fallback when the request has no title
// template.
const DefaultTitleTemplate = "[Número] Herramientas de IA para [Acción] en [Tema]"

// Fixed placeholder values used by Fallback.
const (
	fallbackNumber = "7"
	fallbackAction = "Crear Contenido Viral"
	fallbackTool   = "ChatGPT"
	fallbackResult = "Duplicar tus Vistas"
	fallbackTime   = "30 Días"
	fallbackYear   = "2025"
)

var fallbackOutline = []string{
	"Introducción: por qué la IA está cambiando la creación de contenido",
	"Herramienta 1: ChatGPT para generar guiones y lluvias de ideas",
	"Herramienta 2: Midjourney para crear miniaturas llamativas",
	"Herramienta 3: ElevenLabs para voces en off naturales",
	"Herramienta 4: Descript para editar video como si fuera texto",
	"Herramienta 5: Opus Clip para convertir videos largos en Shorts",
	"Herramienta 6: TubeBuddy para optimizar títulos y etiquetas",
	"Herramienta 7: Canva Magic Studio para diseño rápido",
	"Cómo combinar estas herramientas en un flujo de trabajo semanal",
	"Conclusión y próximos pasos para crecer tu canal",
}

const (
	fallbackMidMention = "Si quieres ahorrar horas de trabajo, prueba estas herramientas " +
		"con sus planes gratuitos; los enlaces están en la descripción."
	fallbackEndMention = "Descarga mi lista completa de herramientas de IA para creadores " +
		"desde el enlace en la descripción y suscríbete para más contenido así."
	fallbackThumbnail = "Tu rostro sorprendido a un lado, los logotipos de las herramientas " +
		"en cuadrícula al otro y el número 7 en grande con texto \"IA PARA CREADORES\"."
	fallbackQuestion = "¿Cuál de estas herramientas de IA ya usas y cuál vas a probar primero?"
)

// Fallback synthesises a video idea from req without any external call.
//
// Only the title depends on the request: its template (or
// DefaultTitleTemplate) has each known placeholder replaced by a fixed value,
// and [Tema]/[Topic] by the subcategory. Unknown placeholders are kept as
// they are. Category, subcategory and video length are copied from req.
func Fallback(req domain.GenerationRequest) domain.VideoIdeaContent {
	titleTemplate := req.TitleTemplate
	if titleTemplate == "" {
		titleTemplate = DefaultTitleTemplate
	}

	replacer := strings.NewReplacer(
		"[Número]", fallbackNumber,
		"[Number]", fallbackNumber,
		"[Tema]", req.Subcategory,
		"[Topic]", req.Subcategory,
		"[Acción]", fallbackAction,
		"[Action]", fallbackAction,
		"[Herramienta]", fallbackTool,
		"[Resultado]", fallbackResult,
		"[Tiempo]", fallbackTime,
		"[Año]", fallbackYear,
	)

	outline := make([]string, len(fallbackOutline))
	copy(outline, fallbackOutline)

	return domain.VideoIdeaContent{
		Title:               replacer.Replace(titleTemplate),
		Outline:             outline,
		MidVideoMention:     fallbackMidMention,
		EndVideoMention:     fallbackEndMention,
		ThumbnailIdea:       fallbackThumbnail,
		InteractionQuestion: fallbackQuestion,
		Category:            req.Category,
		Subcategory:         req.Subcategory,
		VideoLength:         req.VideoLength,
	}
}
