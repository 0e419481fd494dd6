// Package dictionary defines the lookup result, notebook item and chat
// message types shared by the gateway, the notebook and the session
// controller, together with the structural checks applied to AI output.
package dictionary
