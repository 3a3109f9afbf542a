// Package token genera credenciales opacas de sesión. El valor emitido se
// guarda en la tabla tokens y se verifica contra la base en cada request;
// no lleva claims ni firma.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// bytesAleatorios produce tokens de 64 caracteres hex.
const bytesAleatorios = 32

// Generate devuelve un token aleatorio criptográficamente seguro.
func Generate() (string, error) {
	buf := make([]byte, bytesAleatorios)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("token: generar bytes aleatorios: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
