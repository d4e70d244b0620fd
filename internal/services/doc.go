// Package services contains the application service layer between the HTTP
// handlers and the store. Services own error classification and logging;
// handlers translate service errors into API responses.
package services
