// Package dto declares the payloads returned by the school backend. Field
// names follow the backend JSON.
package dto

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	LocalID  string   `json:"localId"`
	Nom      string   `json:"nom"`
	Prenom   string   `json:"prenom"`
	Email    string   `json:"email"`
	Username string   `json:"username"`
	Type     string   `json:"type"`
	Roles    []string `json:"roles"`
	Token    string   `json:"token"`
}

type Programme struct {
	LocalID     string `json:"localId"`
	Jour        string `json:"jour"`
	HeureDebut  string `json:"heureDebut"`
	HeureFin    string `json:"heureFin"`
	MatiereName string `json:"matiereName"`
	ProfNom     string `json:"profNom"`
	ProfPrenom  string `json:"profPrenom"`
	SalleName   string `json:"salleName"`
}

type Dashboard struct {
	NombreCoursAujourdHui int         `json:"nombreCoursAujourdHui"`
	MoyenneGenerale       float64     `json:"moyenneGenerale"`
	CoursAujourdHui       []Programme `json:"coursAujourdHui"`
}

type Alerte struct {
	LocalID        string `json:"localId"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	TypeAlerte     string `json:"typeAlerte"`
	AnnonceTitre   string `json:"annonceTitre"`
	AnnonceContenu string `json:"annonceContenu"`
	AnnonceType    string `json:"annonceType"`
	CreatedAt      string `json:"createdAt"`
}

type Note struct {
	LocalID     string  `json:"localId"`
	MatiereName string  `json:"matiereName"`
	Type        string  `json:"type"`
	Note        float64 `json:"note"`
	Date        string  `json:"date"`
	Valider     bool    `json:"valider"`
}

// NoteGroup is a subject with its notes, already grouped by the backend.
type NoteGroup struct {
	MatiereName string  `json:"matiereName"`
	Moyenne     float64 `json:"moyenne"`
	Notes       []Note  `json:"notes"`
}

// Releve is one transcript line, either a subject or a UE summary (IsUE).
type Releve struct {
	LocalID string  `json:"localId"`
	Name    string  `json:"name"`
	UEID    *string `json:"ueId"`
	UEName  *string `json:"ueName"`
	Moyenne float64 `json:"moyenne"`
	Valider bool    `json:"valider"`
	IsUE    bool    `json:"isUe"`
}

type Document struct {
	LocalID   string `json:"localId"`
	Title     string `json:"title"`
	FileName  string `json:"fileName,omitempty"`
	URL       string `json:"url"`
	CreatedAt string `json:"createdAt"`
}

// CourseDocuments is a programme entry merged with the documents of its course.
type CourseDocuments struct {
	Programme
	Documents []Document `json:"documents"`
}

type Profile struct {
	LocalID       string `json:"localId"`
	Nom           string `json:"nom"`
	Prenom        string `json:"prenom"`
	Matricule     string `json:"matricule"`
	Niveau        string `json:"niveau"`
	Filiere       string `json:"filiere"`
	AnneeScolaire string `json:"anneeScolaire"`
	Email         string `json:"email"`
	Telephone     string `json:"telephone"`
	Adresse       string `json:"adresse"`
	DateNaissance string `json:"dateNaissance"`
}
