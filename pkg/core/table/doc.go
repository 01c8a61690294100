// Package table holds tidy (long-format) tabular data and converts it into
// chart datasets through an [Encoding].
//
// A [DataTable] is an ordered list of [DataRow] maps from column name to
// [FieldValue]. Rows need not share columns; a missing cell behaves like
// a null.
//
// # Encodings
//
// [DataTable.ToDataset] builds one line series per distinct value of the
// color field (or a single series named "default" without one), taking x
// and y from the encoded columns and skipping rows where either is not
// numeric. [DataTable.ToBarDataset] reads text categories from the x
// column and numeric values from the y column, again split by color.
//
// # Grouping Keys
//
// Values are grouped by their string form: text as-is, numbers in the
// shortest decimal form (1 for 1.0), booleans as true or false, and nulls
// or missing cells as "__null__". Groups keep first-occurrence order.
//
// # JSON
//
// A table encodes as {"rows": [...]} with each cell tagged by type, for
// example {"type": "timestamp", "value": 1700000000}. Decoding also
// accepts a bare array of rows and plain JSON cells: numbers become
// numeric, strings text, booleans bool and null null.
package table
