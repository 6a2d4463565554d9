package domain

import "strings"

// Honorific titles that imply a gender, Portuguese and English. The lists
// are package constants folded into immutable lookup sets at init; they are
// never mutated at runtime.
var maleTitles = []string{
	"Sr.", "Senhor", "Mr.", "Dr.", "Doutor", "Prof.", "Professor", "Mestre",
	"Rev.", "Reverendo", "Pe.", "Padre", "Cônego", "Mons.", "Monsenhor",
	"Bispo", "Arcebispo", "Cardeal", "Papa",
	"Eng.", "Engenheiro", "Arq.", "Arquiteto", "Adv.", "Advogado",
	"Des.", "Desembargador", "Min.", "Ministro", "Pres.", "Presidente",
	"Gov.", "Governador", "Dep.", "Deputado", "Sen.", "Senador",
	"Ver.", "Vereador", "Cel.", "Coronel", "Cap.", "Capitão", "Maj.", "Major",
	"Gen.", "General", "Alm.", "Almirante", "Cmd.", "Comandante",
	"Dir.", "Diretor", "Coord.", "Coordenador", "Superint.", "Superintendente",
	"CEO", "CFO", "COO", "CTO",
	"Dom", "Príncipe", "Rei", "Barão", "Conde", "Duque", "Marquês",
	"Sir", "Lord",
}

var femaleTitles = []string{
	"Sra.", "Senhora", "Mrs.", "Miss", "Ms.", "Dra.", "Doutora",
	"Profa.", "Professora", "Mestra", "Revda.", "Reverenda", "Madre",
	"Irmã", "Cônega", "Bispa", "Arcebispa",
	"Enga.", "Engenheira", "Arqa.", "Arquiteta", "Adva.", "Advogada",
	"Desa.", "Desembargadora", "Mina.", "Ministra", "Presa.", "Presidente",
	"Gova.", "Governadora", "Depa.", "Deputada", "Sena.", "Senadora",
	"Vera.", "Vereadora", "Cela.", "Coronela", "Capa.", "Capitã",
	"Maja.", "Major", "Gena.", "General", "Alma.", "Almirante",
	"Cmda.", "Comandante", "Dira.", "Diretora", "Coorda.", "Coordenadora",
	"Superinta.", "Superintendente",
	"CEO", "CFO", "COO", "CTO",
	"Dona", "Princesa", "Rainha", "Baronesa", "Condessa", "Duquesa",
	"Marquesa", "Lady", "Madame",
}

var (
	maleTitleSet   = buildTitleSet(maleTitles)
	femaleTitleSet = buildTitleSet(femaleTitles)
)

func buildTitleSet(titles []string) map[string]struct{} {
	set := make(map[string]struct{}, len(titles))
	for _, t := range titles {
		set[normalizeTitle(t)] = struct{}{}
	}

	return set
}

// normalizeTitle lowercases a title token and strips surrounding whitespace
// and a trailing period, so "SRA.", "sra" and " Sra. " all match.
func normalizeTitle(token string) string {
	token = strings.TrimSpace(strings.ToLower(token))

	return strings.TrimSuffix(token, ".")
}

// ResolveTitle maps an honorific title token to a gender via static lookup.
// Matching is case-insensitive and tolerates a trailing period. Tokens found
// in neither set, or in both (gender-neutral titles such as "CEO"), resolve
// to GenderUnknown. No side effects, no I/O.
func ResolveTitle(token string) Gender {
	key := normalizeTitle(token)
	if key == "" {
		return GenderUnknown
	}

	_, male := maleTitleSet[key]
	_, female := femaleTitleSet[key]

	switch {
	case male && !female:
		return GenderMale
	case female && !male:
		return GenderFemale
	default:
		return GenderUnknown
	}
}
