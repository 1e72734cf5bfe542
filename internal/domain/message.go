package domain

// Message es un mensaje ya descifrado. Se construye una vez y no se modifica.
type Message struct {
	ID         int64      `json:"id"`
	Addressing Addressing `json:"addressing"`
	Ciphertext string     `json:"-"`
	Plaintext  string     `json:"text"`
	Encrypted  bool       `json:"encrypted"`
	IV         []byte     `json:"-"`
	Location   *Location  `json:"location,omitempty"`
	Author     User       `json:"author"`
	Files      []File     `json:"files"`

	Kind    string `json:"kind,omitempty"`
	Hash    string `json:"hash,omitempty"`
	Time    int64  `json:"time"`
	Flagged bool   `json:"flagged"`
	Liked   bool   `json:"liked"`
	Likes   int64  `json:"likes"`
	Links   any    `json:"links,omitempty"`
}

// Location guarda las coordenadas adjuntas a un mensaje.
// Encrypted sin Decoded significa que las coordenadas siguen cifradas.
type Location struct {
	Encrypted bool   `json:"encrypted"`
	Decoded   bool   `json:"decoded"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}
