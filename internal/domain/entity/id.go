package entity

import "encoding/hex"

// IsValidID verifica que el id tenga el formato de un ObjectID de Mongo
// (24 caracteres hexadecimales). La validación vive en el dominio para que
// los casos de uso no dependan del driver.
func IsValidID(id string) bool {
	if len(id) != 24 {
		return false
	}
	_, err := hex.DecodeString(id)
	return err == nil
}
