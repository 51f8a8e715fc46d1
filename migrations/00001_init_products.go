package migration

import (
	"database/sql"

	"github.com/pressly/goose"
)

func init() {
	goose.AddMigration(Up00001, Down00001)
}

//Up00001 creates the Sentinel-2 product index table
func Up00001(tx *sql.Tx) error {
	// This code is executed when the migration is applied.
	_, err := tx.Exec(`
		CREATE TABLE public.products
		(
			product_id text COLLATE pg_catalog."default" NOT NULL,
			title text COLLATE pg_catalog."default" NOT NULL,
			acquisition_date timestamp without time zone NOT NULL,
			cloud_cover real NOT NULL,
			tile_code character(6) NOT NULL,
			download_url text COLLATE pg_catalog."default" NOT NULL,
			bounds geometry NOT NULL,
			CONSTRAINT "products_pk_productId" PRIMARY KEY (product_id)
		)
		WITH (
			OIDS = FALSE
		);

		CREATE INDEX idx_products_bounds
		ON public.products USING gist
		(bounds);

		CREATE INDEX idx_products_acquisition_date
		ON public.products (acquisition_date);
		`)
	return err
}

//Down00001 undoes the db changes.
func Down00001(tx *sql.Tx) error {
	// This code is executed when the migration is rolled back.
	_, err := tx.Exec(`DROP TABLE IF EXISTS public.products;`)
	return err
}
