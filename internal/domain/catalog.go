package domain

// The catalogs below back the option pickers of the generation form. The
// generator itself does not enforce membership; they are advisory.

// Categories are the content niches a creator can pick from.
var Categories = []string{
	"Tecnología",
	"Gaming",
	"Educación",
	"Finanzas",
	"Salud y Fitness",
	"Cocina",
	"Viajes",
	"Belleza y Moda",
	"Entretenimiento",
	"Negocios y Emprendimiento",
	"Desarrollo Personal",
	"Música",
}

// VideoLengths are the supported duration buckets.
var VideoLengths = []string{
	"Short (1-3 min)",
	"Medium (5-10 min)",
	"Long (15-20 min)",
	"Extended (30+ min)",
}

// TemplateStyles are the structural styles a video can follow.
var TemplateStyles = []string{
	"Listicle",
	"How-To",
	"Tutorial",
	"Review",
	"Comparison",
	"Storytelling",
	"Case Study",
	"Challenge",
}

// ContentTones are the tones a video can be written in.
var ContentTones = []string{
	"Informativo",
	"Entretenido",
	"Inspirador",
	"Profesional",
	"Casual",
	"Humorístico",
	"Controversial",
}

// ContentTypes lists every selectable ContentType.
var ContentTypes = []ContentType{
	ContentTypeIdea,
	ContentTypeKeypoints,
	ContentTypeFullScript,
}
