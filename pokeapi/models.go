package pokeapi

// Trimmed down view of https://pokeapi.co/api/v2/pokemon/{id}.
// The silhouette uses the official artwork when it exists since the
// regular front sprite is tiny.
type pokemonResponse struct {
	ID      int           `json:"id"`
	Name    string        `json:"name"`
	Sprites spriteSection `json:"sprites"`
}

type spriteSection struct {
	FrontDefault string       `json:"front_default"`
	Other        otherSprites `json:"other"`
}

type otherSprites struct {
	OfficialArtwork artworkSprites `json:"official-artwork"`
}

type artworkSprites struct {
	FrontDefault string `json:"front_default"`
}

func (p pokemonResponse) sprite() string {
	if art := p.Sprites.Other.OfficialArtwork.FrontDefault; art != "" {
		return art
	}
	return p.Sprites.FrontDefault
}
