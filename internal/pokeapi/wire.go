package pokeapi

// Subsets of the PokeAPI v2 resources that the cache is built from.

type namedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type pokemonResponse struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Height int    `json:"height"`
	Weight int    `json:"weight"`
	Types  []struct {
		Type namedResource `json:"type"`
	} `json:"types"`
	Abilities []struct {
		Ability namedResource `json:"ability"`
	} `json:"abilities"`
	HeldItems []struct {
		Item namedResource `json:"item"`
	} `json:"held_items"`
	Sprites struct {
		FrontDefault *string `json:"front_default"`
	} `json:"sprites"`
	Species namedResource `json:"species"`
}

type speciesResponse struct {
	Genera []struct {
		Genus    string        `json:"genus"`
		Language namedResource `json:"language"`
	} `json:"genera"`
	EggGroups         []namedResource `json:"egg_groups"`
	FlavorTextEntries []struct {
		FlavorText string        `json:"flavor_text"`
		Language   namedResource `json:"language"`
	} `json:"flavor_text_entries"`
	EvolutionChain *struct {
		URL string `json:"url"`
	} `json:"evolution_chain"`
}

type abilityResponse struct {
	EffectEntries []struct {
		ShortEffect string        `json:"short_effect"`
		Language    namedResource `json:"language"`
	} `json:"effect_entries"`
}

type eggGroupResponse struct {
	Names []struct {
		Name     string        `json:"name"`
		Language namedResource `json:"language"`
	} `json:"names"`
}

type evolutionChainResponse struct {
	Chain chainLink `json:"chain"`
}

type chainLink struct {
	Species          namedResource     `json:"species"`
	EvolutionDetails []evolutionDetail `json:"evolution_details"`
	EvolvesTo        []chainLink       `json:"evolves_to"`
}

type evolutionDetail struct {
	Trigger               namedResource  `json:"trigger"`
	MinLevel              *int           `json:"min_level"`
	Item                  *namedResource `json:"item"`
	Gender                *int           `json:"gender"`
	HeldItem              *namedResource `json:"held_item"`
	KnownMove             *namedResource `json:"known_move"`
	KnownMoveType         *namedResource `json:"known_move_type"`
	Location              *namedResource `json:"location"`
	MinAffection          *int           `json:"min_affection"`
	MinBeauty             *int           `json:"min_beauty"`
	MinHappiness          *int           `json:"min_happiness"`
	NeedsOverworldRain    bool           `json:"needs_overworld_rain"`
	PartySpecies          *namedResource `json:"party_species"`
	PartyType             *namedResource `json:"party_type"`
	RelativePhysicalStats *int           `json:"relative_physical_stats"`
	TimeOfDay             string         `json:"time_of_day"`
	TradeSpecies          *namedResource `json:"trade_species"`
	TurnUpsideDown        bool           `json:"turn_upside_down"`
}

const english = "en"
