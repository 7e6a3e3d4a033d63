// Package extract turns raw vendor text into typed features, one extractor
// per device family.
//
// Every extractor runs the same fixed sequence, because later steps depend
// on earlier ones:
//
//  1. confirm the family marker is present as a whole word
//  2. extract the variant, most specific pattern first
//  3. extract the generation and validate its range
//  4. extract the storage capacity (TB converted to GB)
//  5. extract family-specific extras
//  6. compute the extraction confidence
//
// Extractors are pure functions of the input and static tables.
package extract
