package pets

import (
	"strings"
	"time"
)

// Species define las especies soportadas.
// @Enum dog, cat
type Species string

const (
	SpeciesDog Species = "dog"
	SpeciesCat Species = "cat"
)

// DogBreed define las razas de perro principales.
type DogBreed string

const (
	BreedLabrador        DogBreed = "labrador"
	BreedGoldenRetriever DogBreed = "golden_retriever"
	BreedGermanShepherd  DogBreed = "german_shepherd"
	BreedBulldog         DogBreed = "bulldog"
	BreedPoodle          DogBreed = "poodle"
	BreedChihuahua       DogBreed = "chihuahua"
	BreedBeagle          DogBreed = "beagle"
	BreedDogOther        DogBreed = "other"
)

// CatBreed define las razas de gato principales.
type CatBreed string

const (
	BreedPersian   CatBreed = "persian"
	BreedSiamese   CatBreed = "siamese"
	BreedMaineCoon CatBreed = "maine_coon"
	BreedBengal    CatBreed = "bengal"
	BreedSphynx    CatBreed = "sphynx"
	BreedCommon    CatBreed = "common"
	BreedCatOther  CatBreed = "other"
)

// Sex define el sexo de la mascota.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// Owner es el dueño (cliente de la clínica). ID es la referencia que viaja
// en las citas; nombre y teléfono son de contacto.
type Owner struct {
	ID    string
	Name  string
	Phone string
}

// Pet representa el perfil básico de una mascota registrada en la clínica.
type Pet struct {
	ID    string
	Owner Owner

	Name    string
	Species Species // dog, cat
	Breed   string  // Según especie (DogBreed o CatBreed); vacío = sin dato
	Sex     Sex     // male, female, unknown

	BirthDate *time.Time
	Microchip string // ISO 11784: 15 dígitos; vacío = sin chip

	Notes string

	// Usuario de la clínica que dio de alta la ficha.
	CreatedBy string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidSpecies / ValidSex validan contra los enums.
func ValidSpecies(s Species) bool {
	return s == SpeciesDog || s == SpeciesCat
}

func ValidSex(s Sex) bool {
	return s == "" || s == SexMale || s == SexFemale || s == SexUnknown
}

var (
	dogBreeds = map[DogBreed]bool{
		BreedLabrador: true, BreedGoldenRetriever: true, BreedGermanShepherd: true, BreedBulldog: true,
		BreedPoodle: true, BreedChihuahua: true, BreedBeagle: true, BreedDogOther: true,
	}
	catBreeds = map[CatBreed]bool{
		BreedPersian: true, BreedSiamese: true, BreedMaineCoon: true, BreedBengal: true,
		BreedSphynx: true, BreedCommon: true, BreedCatOther: true,
	}
)

// ValidBreed valida la raza contra el enum de la especie. Vacío es válido.
func ValidBreed(s Species, breed string) bool {
	if breed == "" {
		return true
	}
	switch s {
	case SpeciesDog:
		return dogBreeds[DogBreed(breed)]
	case SpeciesCat:
		return catBreeds[CatBreed(breed)]
	}
	return false
}

const microchipLen = 15

func ValidMicrochip(code string) bool {
	if code == "" {
		return true
	}
	if len(code) != microchipLen {
		return false
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func normalizeBreed(b string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(b)), " ", "_")
}
