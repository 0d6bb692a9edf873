package animals

import "time"

// Animal pertenece a un único refugio (IDRefugio).
type Animal struct {
	ID                    string   `bson:"_id" json:"_id"`
	IDRefugio             string   `bson:"idRefugio" json:"idRefugio"`
	Nombre                string   `bson:"nombre" json:"nombre"`
	Especie               string   `bson:"especie" json:"especie"`
	Raza                  string   `bson:"raza" json:"raza"`
	Edad                  string   `bson:"edad" json:"edad"` // texto libre ("2 años", "cachorro")
	Sexo                  string   `bson:"sexo" json:"sexo"`
	Tamano                string   `bson:"tamano" json:"tamano"`
	Descripcion           string   `bson:"descripcion" json:"descripcion"`
	HistorialMedico       string   `bson:"historialMedico" json:"historialMedico"`
	NecesidadesEspeciales string   `bson:"necesidadesEspeciales" json:"necesidadesEspeciales"`
	Esterilizado          bool     `bson:"esterilizado" json:"esterilizado"`
	Fotos                 []string `bson:"fotos" json:"fotos"`
	Adoptado              bool     `bson:"adoptado" json:"adoptado"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
