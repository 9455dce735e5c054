// Command-line tool to clean the database by dropping all tables in the public schema.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/phuslu/log"

	"jobboard-backend/internal/database"
)

const dropAllTables = `
	DO $$
		DECLARE
			r RECORD;
		BEGIN
			FOR r IN (SELECT tablename FROM pg_tables WHERE schemaname = 'public') LOOP
				EXECUTE 'DROP TABLE IF EXISTS ' || quote_ident(r.tablename) || ' CASCADE';
			END LOOP;
		END $$;
	`

func main() {
	fmt.Println("⚠️ WARNING: This command will DROP ALL TABLES in the 'public' schema of your database.")
	fmt.Println("Users, jobs and applications will be lost. Do you want to continue? (yes/no): ")

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read input")
	}

	if strings.TrimSpace(strings.ToLower(input)) != "yes" {
		fmt.Println("Operation cancelled.")
		return
	}

	db, err := database.GetMainDB()
	if err != nil {
		log.Fatal().Err(err).Msg("database failed to initialize")
	}
	defer func() { _ = db.Close() }()

	if err := db.Exec(dropAllTables).Error; err != nil {
		log.Fatal().Err(err).Msg("failed to execute drop command")
	}

	fmt.Println("✅ All tables dropped successfully.")
}
