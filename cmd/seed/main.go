// seed crea o actualiza un usuario operativo con su hash bcrypt.
//
// Uso: go run ./cmd/seed -email operario@tecmade.com -password admin123 -legajo 1001
// Lee la conexión de las mismas variables de entorno que la API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"golang.org/x/crypto/bcrypt"

	"github.com/tecmade/sitrac-api/internal/infrastructure/postgres"
	"github.com/tecmade/sitrac-api/pkg/config"
)

func main() {
	email := flag.String("email", "", "email del usuario")
	password := flag.String("password", "", "password en texto plano (se hashea con bcrypt)")
	legajo := flag.String("legajo", "", "número de legajo")
	flag.Parse()

	if *email == "" || *password == "" || *legajo == "" {
		fmt.Fprintln(os.Stderr, "uso: seed -email <email> -password <password> -legajo <legajo>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generar hash: %v\n", err)
		os.Exit(1)
	}

	query := `
		INSERT INTO usuarios (email, password_hash, legajo)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash, legajo = EXCLUDED.legajo
		RETURNING id`
	var id int64
	if err := pool.QueryRow(ctx, query, *email, string(hash), *legajo).Scan(&id); err != nil {
		fmt.Fprintf(os.Stderr, "insertar usuario: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("usuario %s listo (id %d, legajo %s)\n", *email, id, *legajo)
}
