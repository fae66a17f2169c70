// Package sources implements the per-source connectors that extract raw
// indicator values for a fund.
//
// Each connector knows its own endpoint, trust rank and label patterns, and
// hides how the page is obtained (plain HTTP for statusinvest and brapi, a
// headless browser for the JS-rendered fundsexplorer pages). A label that
// does not appear, a number that cannot be parsed, or a value outside its
// plausible range all degrade to explicit absence. Fetch never returns an error; a dead source yields an all-absent
// SourceRecord so one broken site cannot abort a whole scan.
package sources
