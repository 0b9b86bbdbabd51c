// Package catalog supplies the read-only track collection.
package catalog

import (
	"context"
	"slices"

	"github.com/ewilliams-labs/chorus/internal/core/domain"
	"github.com/ewilliams-labs/chorus/internal/core/ports"
)

// Static serves the built-in seed catalog.
type Static struct{}

// compile-time interface assertion
var _ ports.Catalog = Static{}

// Tracks returns a copy of the seed catalog.
func (Static) Tracks(ctx context.Context) ([]domain.Track, error) {
	return slices.Clone(seedTracks), nil
}

var seedTracks = []domain.Track{
	{
		ID:       "1",
		Title:    "KU LO SA (with Camila Cabello)",
		Artist:   "Oxlade, Camila Cabello",
		Album:    "Oxlade From Africa",
		Duration: 148,
		AudioURL: "https://www.soundjay.com/misc/sounds/bell-ringing-05.wav",
		ImageURL: "https://via.placeholder.com/300x300/f97316/ffffff?text=KU",
		Genre:    "Afrobeats",
		Year:     2023,
	},
	{
		ID:       "2",
		Title:    "Jo Tum Mere Ho",
		Artist:   "Prateek Kuhad",
		Album:    "The Way That Lovers Do",
		Duration: 195,
		AudioURL: "https://www.soundjay.com/misc/sounds/bell-ringing-05.wav",
		ImageURL: "https://via.placeholder.com/300x300/8b5cf6/ffffff?text=JT",
		Genre:    "Indie Folk",
		Year:     2018,
	},
	{
		ID:       "3",
		Title:    "im too fast",
		Artist:   "Shiloh Dynasty",
		Album:    "Llj",
		Duration: 132,
		AudioURL: "https://www.soundjay.com/misc/sounds/bell-ringing-05.wav",
		ImageURL: "https://via.placeholder.com/300x300/06b6d4/ffffff?text=IT",
		Genre:    "Lo-fi Hip Hop",
		Year:     2017,
	},
	{
		ID:       "4",
		Title:    "Ami beche achi",
		Artist:   "Tomar sporoshe",
		Album:    "Bengali Classics",
		Duration: 210,
		AudioURL: "https://www.soundjay.com/misc/sounds/bell-ringing-05.wav",
		ImageURL: "https://via.placeholder.com/300x300/ef4444/ffffff?text=AB",
		Genre:    "Bengali",
		Year:     2020,
	},
	{
		ID:       "5",
		Title:    "oh baby i am a wreck",
		Artist:   "when i'm without you",
		Album:    "Emotional Ballads",
		Duration: 178,
		AudioURL: "https://www.soundjay.com/misc/sounds/bell-ringing-05.wav",
		ImageURL: "https://via.placeholder.com/300x300/10b981/ffffff?text=OB",
		Genre:    "Pop",
		Year:     2021,
	},
	{
		ID:       "6",
		Title:    "Skin love",
		Artist:   "Various Artists",
		Album:    "Summer Vibes",
		Duration: 165,
		AudioURL: "https://www.soundjay.com/misc/sounds/bell-ringing-05.wav",
		ImageURL: "https://via.placeholder.com/300x300/f59e0b/ffffff?text=SL",
		Genre:    "R&B",
		Year:     2022,
	},
	{
		ID:       "7",
		Title:    "Trust Nobody",
		Artist:   "Independent Artist",
		Album:    "Trust Issues",
		Duration: 201,
		AudioURL: "https://www.soundjay.com/misc/sounds/bell-ringing-05.wav",
		ImageURL: "https://via.placeholder.com/300x300/6366f1/ffffff?text=TN",
		Genre:    "Hip Hop",
		Year:     2023,
	},
	{
		ID:       "8",
		Title:    "Shey Ke?",
		Artist:   "Topu",
		Album:    "Bondhu Bhabo Ki",
		Duration: 187,
		AudioURL: "https://www.soundjay.com/misc/sounds/bell-ringing-05.wav",
		ImageURL: "https://via.placeholder.com/300x300/6b7280/ffffff?text=SK",
		Genre:    "Bengali Rock",
		Year:     2019,
	},
	{
		ID:       "9",
		Title:    "Habib Wahid Mix",
		Artist:   "Habib Wahid, Tahsan, Arfin Rumey",
		Album:    "Bengali Fusion",
		Duration: 245,
		AudioURL: "https://www.soundjay.com/misc/sounds/bell-ringing-05.wav",
		ImageURL: "https://via.placeholder.com/300x300/10b981/ffffff?text=HW",
		Genre:    "Fusion",
		Year:     2020,
	},
	{
		ID:       "10",
		Title:    "Best of Romance",
		Artist:   "Atif Aslam, Pritam",
		Album:    "Bollywood Romance",
		Duration: 198,
		AudioURL: "https://www.soundjay.com/misc/sounds/bell-ringing-05.wav",
		ImageURL: "https://via.placeholder.com/300x300/dc2626/ffffff?text=BR",
		Genre:    "Bollywood",
		Year:     2021,
	},
}
