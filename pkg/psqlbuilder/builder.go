package psqlbuilder

import "github.com/Masterminds/squirrel"

// psql builder с плейсхолдерами $1, $2, ... для Postgres
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Select создает SELECT builder с Postgres-плейсхолдерами
func Select(columns ...string) squirrel.SelectBuilder {
	return psql.Select(columns...)
}

// Insert создает INSERT builder с Postgres-плейсхолдерами
func Insert(table string) squirrel.InsertBuilder {
	return psql.Insert(table)
}

// Update создает UPDATE builder с Postgres-плейсхолдерами
func Update(table string) squirrel.UpdateBuilder {
	return psql.Update(table)
}

// Delete создает DELETE builder с Postgres-плейсхолдерами
func Delete(table string) squirrel.DeleteBuilder {
	return psql.Delete(table)
}
