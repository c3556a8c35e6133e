package domain

// SampleImagePathPrefix is the public path of the bundled sample images. Files under it are never deleted.
const SampleImagePathPrefix = "/api/sample-images/"

// SampleImages maps a sample image type to its bundled file name.
var SampleImages = map[string]string{
	"wedding":     "elegant_wedding_invitation_design.png",
	"birthday":    "modern_birthday_party_invitation.png",
	"corporate":   "luxurious_corporate_event_invitation.png",
	"rustic":      "rustic_outdoor_wedding_invitation.png",
	"baby-shower": "baby_shower_invitation_design.png",
	"gala":        "black_tie_gala_invitation.png",
}

// SampleImageURL returns the public URL of a bundled sample image.
func SampleImageURL(kind string) string {
	return SampleImagePathPrefix + kind
}
