/*
Package sqldataset loads datasets from and stores them into tables
of SQL databases.

A table holds one record per row and one feature per column, every
value stored as text. The column order of the table is the feature
order of the loaded dataset. The database specifics (driver, identifier
quoting, placeholders and table listing) are provided by an Adapter;
see the sqlite3adapter and pgadapter subpackages.
*/
package sqldataset
