package generation

import (
	"testing"

	"github.com/phrazzld/ideaflow-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFallback_TitleSubstitution(t *testing.T) {
	tests := []struct {
		name          string
		titleTemplate string
		subcategory   string
		want          string
	}{
		{
			name:          "known spanish placeholders",
			titleTemplate: "Top [Número] Secretos sobre [Tema]",
			subcategory:   "edición de video",
			want:          "Top 7 Secretos sobre edición de video",
		},
		{
			name:          "unknown placeholder is kept",
			titleTemplate: "[Desconocido] cosas sobre [Tema]",
			subcategory:   "IA",
			want:          "[Desconocido] cosas sobre IA",
		},
		{
			name:          "default template",
			titleTemplate: "",
			subcategory:   "Esports",
			want:          "7 Herramientas de IA para Crear Contenido Viral en Esports",
		},
		{
			name:          "english placeholders",
			titleTemplate: "[Number] ways to [Action] with [Topic]",
			subcategory:   "podcasts",
			want:          "7 ways to Crear Contenido Viral with podcasts",
		},
		{
			name:          "every placeholder in the table",
			titleTemplate: "[Herramienta] [Resultado] [Tiempo] [Año]",
			subcategory:   "x",
			want:          "ChatGPT Duplicar tus Vistas 30 Días 2025",
		},
		{
			name:          "repeated placeholder",
			titleTemplate: "[Tema] vs [Tema]",
			subcategory:   "TikTok",
			want:          "TikTok vs TikTok",
		},
		{
			name:          "subcategory containing a placeholder is not expanded again",
			titleTemplate: "Todo sobre [Tema]",
			subcategory:   "[Número]",
			want:          "Todo sobre [Número]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := domain.GenerationRequest{
				Category:      "Tecnología",
				Subcategory:   tt.subcategory,
				VideoLength:   "Short (1-3 min)",
				TitleTemplate: tt.titleTemplate,
			}

			assert.Equal(t, tt.want, Fallback(req).Title)
		})
	}
}

func TestFallback_EchoesRequestAndIsComplete(t *testing.T) {
	req := domain.GenerationRequest{
		Category:    "Gaming",
		Subcategory: "Esports",
		VideoLength: "Short (1-3 min)",
	}

	content := Fallback(req)

	assert.Equal(t, "Gaming", content.Category)
	assert.Equal(t, "Esports", content.Subcategory)
	assert.Equal(t, "Short (1-3 min)", content.VideoLength)
	assert.GreaterOrEqual(t, len(content.Outline), 7)
	for _, entry := range content.Outline {
		assert.NotEmpty(t, entry)
	}
	assert.NotEmpty(t, content.Title)
	assert.NotEmpty(t, content.MidVideoMention)
	assert.NotEmpty(t, content.EndVideoMention)
	assert.NotEmpty(t, content.ThumbnailIdea)
	assert.NotEmpty(t, content.InteractionQuestion)
}

func TestFallback_IsDeterministic(t *testing.T) {
	req := domain.GenerationRequest{
		Category:      "Cocina",
		Subcategory:   "repostería",
		VideoFocus:    "ignored",
		VideoLength:   "Long (15-20 min)",
		TemplateStyle: "How-To",
		ContentTone:   "Casual",
		TitleTemplate: "[Número] postres en [Tiempo]",
		ContentType:   domain.ContentTypeFullScript,
		TimingDetail:  true,
	}

	first := Fallback(req)
	second := Fallback(req)
	assert.Equal(t, first, second)

	// Callers may modify the returned outline without affecting later calls.
	first.Outline[0] = "changed"
	assert.NotEqual(t, "changed", Fallback(req).Outline[0])
}

func TestFallback_IgnoresNonTitleFields(t *testing.T) {
	base := domain.GenerationRequest{Category: "Música", Subcategory: "guitarra", VideoLength: "Medium (5-10 min)"}
	varied := base
	varied.VideoFocus = "acordes"
	varied.TemplateStyle = "Tutorial"
	varied.ContentTone = "Humorístico"
	varied.ContentType = domain.ContentTypeKeypoints

	assert.Equal(t, Fallback(base), Fallback(varied))
}
