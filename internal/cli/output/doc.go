// Package output renders command results for confctl.
//
// Table output flattens configuration trees into sorted KEY/VALUE rows and
// slices of structs into one column per field; fields tagged table:"wide"
// appear only with --wide. JSON and YAML output encode values as they are,
// so a subtree prints as a nested document.
package output
