// Package organizations syncs organization records from the ticketing
// REST API into the content store.
//
// A full run fetches all organizations in the configured date window,
// maps and transforms every field, downloads preview images and
// reconciles the result against the stored entities. Organizations that
// dropped out of the API go private instead of being deleted. A faster
// availability run refreshes only the rendered ticket status controls.
package organizations
