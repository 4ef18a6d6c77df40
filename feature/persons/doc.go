// Package persons syncs team member records from a shared spreadsheet
// into the content store.
//
// The worksheet binds a handful of fixed columns to internal fields; the
// phone column doubles as the stable record ID. Profile pictures are
// pulled from the drive behind the sheet and attached as previews.
package persons
