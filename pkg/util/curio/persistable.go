package curio

import (
	"database/sql"
	"fmt"
	"reflect"
	"strings"

	"github.com/Xaaaaii7/lliga-sub001/internal/logger"
	_ "modernc.org/sqlite"
)

var db *sql.DB

// Persistable interface defines methods that persistent objects must implement
type Persistable interface {
	GetTableName() string
	GetPrimaryKey() map[string]interface{}
	SetPrimaryKey(map[string]interface{}) error
	BeforeSave() error
	AfterSave() error
}

// InitDatabase opens (or re-opens) the database at the given path.
// Mostly useful for pointing tests at a throwaway file.
func InitDatabase(path string) error {
	if db != nil {
		db.Close()
		db = nil
	}
	Config.DbPath = path
	_, err := GetDB()
	return err
}

// CloseDatabase closes the database connection
func CloseDatabase() error {
	if db != nil {
		err := db.Close()
		db = nil
		return err
	}
	return nil
}

// GetDB returns the database connection, opening it on first use
func GetDB() (*sql.DB, error) {
	if db == nil {
		var err error
		db, err = sql.Open("sqlite", Config.DbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}

		if err = db.Ping(); err != nil {
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}

		logger.Info("Database initialized successfully", Config.DbPath)
	}
	return db, nil
}

// createTables creates all necessary database tables
func createTables() error {
	logger.Info("Creating database tables")

	entities := []Persistable{
		&Match{},
		&Team{},
		&Player{},
		&TeamMatchStat{},
		&GoalEvent{},
		&RedCardEvent{},
		&CuriosityFinding{},
	}
	for _, entity := range entities {
		if err := CreateTable(entity); err != nil {
			return fmt.Errorf("failed to create %s table: %w", entity.GetTableName(), err)
		}
	}

	logger.Info("Database tables created successfully")
	return nil
}

// CreateTable creates a table for the given persistable object using struct tags
func CreateTable(obj Persistable) error {
	d, err := GetDB()
	if err != nil {
		return err
	}

	tableName := obj.GetTableName()
	createSQL := generateCreateTableSQL(obj, tableName)

	logger.Debug("Creating table with SQL", createSQL)

	_, err = d.Exec(createSQL)
	if err != nil {
		return fmt.Errorf("failed to create table %s: %w", tableName, err)
	}

	// Create indexes
	for _, query := range generateIndexSQL(obj, tableName) {
		logger.Debug("Creating index with SQL", query)
		if _, err := d.Exec(query); err != nil {
			logger.Warn("Failed to create index", err)
		}
	}

	return nil
}

// generateCreateTableSQL generates CREATE TABLE SQL from struct tags
func generateCreateTableSQL(obj interface{}, tableName string) string {
	objType := reflect.TypeOf(obj)
	if objType.Kind() == reflect.Ptr {
		objType = objType.Elem()
	}

	var columns []string
	var primaryKeys []string

	for i := 0; i < objType.NumField(); i++ {
		field := objType.Field(i)

		if !field.IsExported() {
			continue
		}

		// Get database column definition from tag
		dbType := field.Tag.Get("dbtype")
		if dbType == "" {
			continue // Skip fields without database type
		}

		columnName := field.Tag.Get("column")
		if columnName == "" {
			columnName = strings.ToLower(field.Name)
		}

		if field.Tag.Get("primary") == "true" {
			primaryKeys = append(primaryKeys, columnName)
		}

		columns = append(columns, fmt.Sprintf("%s %s", columnName, dbType))
	}

	if len(primaryKeys) > 0 {
		columns = append(columns, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(primaryKeys, ", ")))
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", tableName, strings.Join(columns, ", "))
}

// generateIndexSQL generates index creation SQL from struct tags
func generateIndexSQL(obj interface{}, tableName string) []string {
	objType := reflect.TypeOf(obj)
	if objType.Kind() == reflect.Ptr {
		objType = objType.Elem()
	}

	var indexSQL []string

	for i := 0; i < objType.NumField(); i++ {
		field := objType.Field(i)

		if field.Tag.Get("index") == "" {
			continue
		}

		columnName := field.Tag.Get("column")
		if columnName == "" {
			columnName = strings.ToLower(field.Name)
		}

		indexName := fmt.Sprintf("idx_%s_%s", tableName, columnName)
		query := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s(%s)", indexName, tableName, columnName)
		indexSQL = append(indexSQL, query)
	}

	return indexSQL
}

// executor is the subset of sql.DB and sql.Tx the save path runs on, so
// the same code serves both single saves and transactional bulk saves
type executor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// Save persists the object to the database (INSERT or UPDATE)
func Save(obj Persistable) error {
	d, err := GetDB()
	if err != nil {
		return err
	}
	return saveOn(d, obj)
}

// saveOn runs the full save cycle, hooks included, on the given executor
func saveOn(exec executor, obj Persistable) error {
	if err := obj.BeforeSave(); err != nil {
		return fmt.Errorf("before save hook failed: %w", err)
	}

	exists, err := existsOn(exec, obj)
	if err != nil {
		return fmt.Errorf("failed to check existence: %w", err)
	}

	if exists {
		err = update(exec, obj)
	} else {
		err = insert(exec, obj)
	}

	if err != nil {
		return err
	}

	if err := obj.AfterSave(); err != nil {
		return fmt.Errorf("after save hook failed: %w", err)
	}

	return nil
}

// insert adds a new record to the database
func insert(exec executor, obj Persistable) error {
	tableName := obj.GetTableName()
	columns, placeholders, values := getInsertData(obj)

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		tableName, strings.Join(columns, ", "), strings.Join(placeholders, ", "))

	logger.Debug("Insert SQL", query)

	if _, err := exec.Exec(query, values...); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", tableName, err)
	}

	return nil
}

// update modifies an existing record in the database
func update(exec executor, obj Persistable) error {
	tableName := obj.GetTableName()
	setPairs, values := getUpdateData(obj)

	whereClause, whereValues := buildWhereClause(obj.GetPrimaryKey())
	values = append(values, whereValues...)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s", tableName, strings.Join(setPairs, ", "), whereClause)

	logger.Debug("Update SQL", query)

	if _, err := exec.Exec(query, values...); err != nil {
		return fmt.Errorf("failed to update %s: %w", tableName, err)
	}

	return nil
}

// getInsertData extracts column names, placeholders, and values for INSERT
func getInsertData(obj interface{}) ([]string, []string, []interface{}) {
	objValue := reflect.ValueOf(obj)
	objType := reflect.TypeOf(obj)

	if objValue.Kind() == reflect.Ptr {
		objValue = objValue.Elem()
		objType = objType.Elem()
	}

	var columns []string
	var placeholders []string
	var values []interface{}

	for i := 0; i < objType.NumField(); i++ {
		field := objType.Field(i)
		fieldValue := objValue.Field(i)

		if !field.IsExported() || field.Tag.Get("dbtype") == "" {
			continue
		}

		columnName := field.Tag.Get("column")
		if columnName == "" {
			columnName = strings.ToLower(field.Name)
		}

		columns = append(columns, columnName)
		placeholders = append(placeholders, "?")
		values = append(values, fieldValue.Interface())
	}

	return columns, placeholders, values
}

// getUpdateData extracts SET pairs and values for UPDATE
func getUpdateData(obj interface{}) ([]string, []interface{}) {
	objValue := reflect.ValueOf(obj)
	objType := reflect.TypeOf(obj)

	if objValue.Kind() == reflect.Ptr {
		objValue = objValue.Elem()
		objType = objType.Elem()
	}

	var setPairs []string
	var values []interface{}

	for i := 0; i < objType.NumField(); i++ {
		field := objType.Field(i)
		fieldValue := objValue.Field(i)

		if !field.IsExported() || field.Tag.Get("dbtype") == "" {
			continue
		}

		// Primary key fields never change in an update
		if field.Tag.Get("primary") == "true" {
			continue
		}

		columnName := field.Tag.Get("column")
		if columnName == "" {
			columnName = strings.ToLower(field.Name)
		}

		setPairs = append(setPairs, fmt.Sprintf("%s = ?", columnName))
		values = append(values, fieldValue.Interface())
	}

	return setPairs, values
}

// Exists checks if the object exists in the database
func Exists(obj Persistable) (bool, error) {
	d, err := GetDB()
	if err != nil {
		return false, err
	}
	return existsOn(d, obj)
}

func existsOn(exec executor, obj Persistable) (bool, error) {
	tableName := obj.GetTableName()
	whereClause, values := buildWhereClause(obj.GetPrimaryKey())

	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", tableName, whereClause)

	var count int
	if err := exec.QueryRow(query, values...).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check existence in %s: %w", tableName, err)
	}

	return count > 0, nil
}

// FindByPrimaryKey retrieves an object by its primary key
func FindByPrimaryKey(obj Persistable, primaryKey map[string]interface{}) error {
	d, err := GetDB()
	if err != nil {
		return err
	}

	tableName := obj.GetTableName()
	columns, destinations := getSelectData(obj)
	whereClause, values := buildWhereClause(primaryKey)

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s", strings.Join(columns, ", "), tableName, whereClause)

	logger.Debug("FindByPrimaryKey SQL", query)

	row := d.QueryRow(query, values...)
	err = row.Scan(destinations...)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("record not found in %s", tableName)
		}
		return fmt.Errorf("failed to scan row from %s: %w", tableName, err)
	}

	return nil
}

// getSelectData extracts column names and scan destinations for SELECT
func getSelectData(obj interface{}) ([]string, []interface{}) {
	objValue := reflect.ValueOf(obj)
	objType := reflect.TypeOf(obj)

	if objValue.Kind() == reflect.Ptr {
		objValue = objValue.Elem()
		objType = objType.Elem()
	}

	var columns []string
	var destinations []interface{}

	for i := 0; i < objType.NumField(); i++ {
		field := objType.Field(i)
		fieldValue := objValue.Field(i)

		if !field.IsExported() || field.Tag.Get("dbtype") == "" {
			continue
		}

		columnName := field.Tag.Get("column")
		if columnName == "" {
			columnName = strings.ToLower(field.Name)
		}

		columns = append(columns, columnName)
		destinations = append(destinations, fieldValue.Addr().Interface())
	}

	return columns, destinations
}

// BulkSave saves multiple objects in a single transaction. If any save
// fails the whole batch is rolled back.
func BulkSave(objects []Persistable) error {
	d, err := GetDB()
	if err != nil {
		return err
	}

	tx, err := d.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, obj := range objects {
		if err := saveOn(tx, obj); err != nil {
			return fmt.Errorf("failed to save object: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// buildWhereClause builds a WHERE clause from a primary key map
func buildWhereClause(primaryKey map[string]interface{}) (string, []interface{}) {
	var conditions []string
	var values []interface{}

	for column, value := range primaryKey {
		conditions = append(conditions, fmt.Sprintf("%s = ?", column))
		values = append(values, value)
	}

	return strings.Join(conditions, " AND "), values
}

// FindWhere executes a custom WHERE query with an explicit row order.
// The orderBy clause is part of the tie-break contract of the metric
// evaluators, so callers must always pick a stable one (primary key
// ascending unless there is a better natural order).
func FindWhere(obj Persistable, whereClause string, orderBy string, args ...interface{}) ([]interface{}, error) {
	d, err := GetDB()
	if err != nil {
		return nil, err
	}

	tableName := obj.GetTableName()
	columns, _ := getSelectData(obj)

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s", strings.Join(columns, ", "), tableName, whereClause)
	if orderBy != "" {
		query = fmt.Sprintf("%s ORDER BY %s", query, orderBy)
	}

	logger.Debug("FindWhere SQL", query)

	rows, err := d.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", tableName, err)
	}
	defer rows.Close()

	var results []interface{}
	objType := reflect.TypeOf(obj)
	if objType.Kind() == reflect.Ptr {
		objType = objType.Elem()
	}

	for rows.Next() {
		newObj := reflect.New(objType).Interface()
		_, destinations := getSelectData(newObj)

		err := rows.Scan(destinations...)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row from %s: %w", tableName, err)
		}

		results = append(results, newObj)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows from %s: %w", tableName, err)
	}

	return results, nil
}
