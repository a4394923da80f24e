package pokeapi

// PokeAPI stores genus on the species, so regional forms inherit the base
// form's genus. These forms have their own.
var genusOverrides = map[string]string{
	"ponyta-galar":      "Unique Horn Pokémon",
	"rapidash-galar":    "Unique Horn Pokémon",
	"growlithe-hisui":   "Scout Pokémon",
	"voltorb-hisui":     "Sphere Pokémon",
	"electrode-hisui":   "Sphere Pokémon",
	"mr-mime-galar":     "Dancing Pokémon",
	"articuno-galar":    "Cruel Pokémon",
	"zapdos-galar":      "Strong Legs Pokémon",
	"moltres-galar":     "Malevolent Pokémon",
	"typhlosion-hisui":  "Ghost Flame Pokémon",
	"wooper-paldea":     "Mud Fish Pokémon",
	"slowking-galar":    "Hexpert Pokémon",
	"lilligant-hisui":   "Spinning Pokémon",
	"darumanitan-galar": "Zen Charm Pokémon",
	"zorua-hisui":       "Spiteful Fox Pokémon",
	"zoroark-hisui":     "Baneful Fox Pokémon",
	"braviary-hisui":    "Battle Cry Pokémon",
	"sliggoo-hisui":     "Snail Pokémon",
	"goodra-hisui":      "Shell Bunker Pokémon",
}

func genusFor(name string, english []string) []string {
	if g, ok := genusOverrides[name]; ok {
		return []string{g}
	}
	return english
}
